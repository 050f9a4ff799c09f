// Package virtual turns a display into a scrollable viewport onto a larger canvas.
//
// The canvas is populated with hotspots: fixed size regions placed at fixed canvas
// coordinates, each painted by its own [Renderer]. Moving the viewport with
// [Canvas.SetPosition], or calling [Canvas.Refresh] from the caller's own loop, runs one
// refresh pass: hotspots overlapping the viewport are rendered when due, composited in
// insertion order and exactly one frame is sent to the display.
//
// Nothing runs in the background. A Canvas is not safe for concurrent use.
package virtual
