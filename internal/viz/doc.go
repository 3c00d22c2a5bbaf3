// Package viz is the terminal front end: a Bubble Tea program that draws the
// response curve on a Braille canvas and lets the user place items on the
// timeline with the keyboard or by dragging markers with the mouse.
//
//   - [Model]: the program model with tracker and learning screens
//   - [Canvas]: Braille dot canvas with per-cell colors
//   - [Theme]: chrome colors; curve colors come from the page palette
//
// # Key Bindings
//
//	j/k    - Move the catalog cursor
//	Enter  - Add or remove the item under the cursor
//	/      - Search the catalog
//	Tab    - Focus the next marker
//	h/l    - Nudge the focused marker by one sample
//	x      - Remove the focused marker
//	i      - Inspect the focused marker
//	r      - Reset the timeline
//	t      - Cycle themes
//	L      - Toggle the learning screen
//	?      - Toggle help
//
// # Mouse
//
// Pressing on a marker arms it. Moving past the drag threshold drags it along
// the timeline; releasing without a drag toggles its inspected state. All
// session mutation happens inside Update.
package viz
