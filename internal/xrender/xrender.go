// Package xrender is the thin drawing adapter SPEC_FULL.md §4.12 calls
// for: it draws the bar's tag/layout/status text and the tab-bar's window
// titles, and nothing else. Font rasterization, glyph metrics and color
// parsing are delegated entirely to xgbutil/xgraphics/xgbutil's xft-based
// helpers the way the render internals in original_source/src/drw.h are
// delegated to Xft in the original — dynamd never reimplements a font
// engine, it only asks one for pixel widths and draws the results.
package xrender

import (
	"image"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xgraphics"
)

// Style is the {fg, bg, border} triple a bar segment draws with,
// translated from config.ColorScheme at the wm layer.
type Style struct {
	Fg, Bg, Border xgraphics.BGRA
}

// Drawable is the narrow surface bar/tab rendering needs: measure text,
// paint rectangles, paint text, and flush to a window. Nothing in
// internal/bar imports this package directly — only internal/wm does,
// keeping bar's layout math testable without a live connection, per the
// same "consumer-defined interface" approach internal/focus uses for
// Server.
type Drawable interface {
	TextWidth(font string, size float64, text string) int
	FillRect(x, y, w, h int, style Style)
	Text(x, y int, font string, size float64, text string, style Style)
	Flush(win xproto.Window)
}

// Canvas is the real Drawable, backed by an xgraphics.Image reused across
// redraws the way drw_create in the original keeps a single persistent
// Drw for the lifetime of the process rather than reallocating per frame.
type Canvas struct {
	xu  *xgbutil.XUtil
	img *xgraphics.Image
}

// New allocates a canvas sized to the bar's maximum extent (a monitor's
// full width and the configured bar height); it is resized lazily on the
// next monitor-geometry change instead of per draw.
func New(xu *xgbutil.XUtil, w, h int) *Canvas {
	return &Canvas{xu: xu, img: xgraphics.New(xu, image.Rect(0, 0, w, h))}
}

func (c *Canvas) TextWidth(font string, size float64, text string) int {
	ctx, err := xgraphics.NewFont(font, size)
	if err != nil {
		return len(text) * int(size/2)
	}
	w, _ := xgraphics.Extents(ctx, size, text)
	return w
}

func (c *Canvas) FillRect(x, y, w, h int, style Style) {
	c.img.For(func(cx, cy int) xgraphics.BGRA {
		if cx >= x && cx < x+w && cy >= y && cy < y+h {
			return style.Bg
		}
		return c.img.At(cx, cy).(xgraphics.BGRA)
	})
}

func (c *Canvas) Text(x, y int, font string, size float64, text string, style Style) {
	ctx, err := xgraphics.NewFont(font, size)
	if err != nil {
		return
	}
	_, _, _ = c.img.Text(x, y, style.Fg, size, ctx, text)
}

// Flush blits the canvas onto win and requests an expose, the way
// drw_map copies the pixmap onto the bar window after each redraw.
func (c *Canvas) Flush(win xproto.Window) {
	c.img.XSurfaceSet(win)
	c.img.XDraw()
	c.img.XPaint(win)
}
