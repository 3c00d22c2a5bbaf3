package watcher

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// ChangedMsg reports which watched files changed since the watch started.
type ChangedMsg struct {
	Files []string
}

// ErrorMsg carries a failure to start watching.
type ErrorMsg struct {
	Err error
}

// Watch returns a command that blocks until one of the files changes and the
// changes settle for the debounce interval. Parent directories are watched so
// editors that replace files on save are still seen. Re-issue the command to
// keep watching.
func Watch(debounce time.Duration, files ...string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		defer w.Close()

		wanted := make(map[string]bool, len(files))
		dirs := make(map[string]bool)
		for _, f := range files {
			if f == "" {
				continue
			}
			abs, err := filepath.Abs(f)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			wanted[abs] = true
			dirs[filepath.Dir(abs)] = true
		}
		if len(wanted) == 0 {
			return nil
		}
		for d := range dirs {
			if err := w.Add(d); err != nil {
				return ErrorMsg{Err: err}
			}
		}
		return wait(w, wanted, debounce)
	}
}

func wait(w *fsnotify.Watcher, wanted map[string]bool, debounce time.Duration) tea.Msg {
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	changed := make(map[string]bool)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !wanted[name] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			changed[name] = true
			timer.Reset(debounce)
		case <-timer.C:
			msg := ChangedMsg{Files: make([]string, 0, len(changed))}
			for f := range changed {
				msg.Files = append(msg.Files, f)
			}
			return msg
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
