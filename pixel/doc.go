// Package pixel implements a color and image library suitable for OLED pixel displays.
//
// This module provides additional color models, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces. [MonoImage] is the row-major 1-bit buffer that
// display drivers accept; [MonoVerticalLSBImage] mirrors the page-addressed memory layout used
// by SSD1306 style controllers.
package pixel
