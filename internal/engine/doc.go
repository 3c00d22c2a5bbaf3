// Package engine holds the interactive state of one chart: which items are
// selected, where each sits on the timeline, and the display hints derived
// from user actions.
//
//   - [Session]: selection set, timing store and hints for one page config
//   - [Marker]: a placed item with its position and curve value
//   - [Option]: functional options for [New]
//
// Every mutation is followed by a full recompute on demand: [Session.Curve]
// resynthesizes all samples from the current selection and timings, and
// [Session.Segments] recolors them for a given pixel frame.
//
// # Example
//
//	s := engine.New(*config.DefaultConfig())
//	s.Select(soda)
//	s.Retime(soda.ID, 0.4)
//	samples := s.Curve()
//
// # Thread Safety
//
// Session is NOT thread-safe. It is owned by a single event loop; the TUI
// mutates it only from its Update method.
package engine
