// Package framebuffer previews display output on the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The framebuffer is opened
// with [Open] and then functions like a regular display of the requested size: every frame is
// scaled up by the largest whole factor that fits and drawn in the top left corner.
package framebuffer

import "errors"

// ErrNotSupported is returned by [Open] on systems without framebuffer support.
var ErrNotSupported = errors.New("framebuffer: not supported")

// ErrColorModel is returned by [Open] for framebuffers with an unsupported pixel format.
var ErrColorModel = errors.New("framebuffer: unsupported color model")
