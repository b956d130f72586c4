package gvideo

// Beam intensities, brightest on top so the cursor stays visible over
// drawn pixels.
const (
	intGraphic = 0xb0
	intAlpha   = 0xd0
	intCursor  = 0xf0
)

// rgb expands a 3-bit color index (bit 0 red, bit 1 green, bit 2 blue)
// at the given intensity.
func rgb(color uint8, intensity byte) (r, g, b byte) {
	if color&1 != 0 {
		r = intensity
	}
	if color&2 != 0 {
		g = intensity
	}
	if color&4 != 0 {
		b = intensity
	}
	return
}

// Scanline runs the per-scanline work of the controller: a row fetch at
// the start of every text row and the rendering of the line itself.
func (c *Controller) Scanline(scan int) {
	c.variant.scanline(c, scan)
}

// VBlank signals an edge of the vertical blanking interval. The rising
// edge restarts the alpha fetcher and, on the color controller, latches
// the light pen sample.
func (c *Controller) VBlank(entering bool) {
	c.variant.vblank(c, entering)
}

func (c *Controller) chargenRow(code byte, line int, alt bool) byte {
	if alt {
		return c.optChargen.Row(code, line)
	}
	return c.chargen.Row(code, line)
}

// cellPixels produces the 9 pixels of one character cell on one
// scanline, applying cursor, underline, blink and inverse attributes.
// Bit j of the result is the pixel at cell x offset j.
func (c *Controller) cellPixels(code, attrs byte, lineInRow int, altFont bool) uint16 {
	frame := c.beam.FrameNumber()
	cursorLine := lineInRow == 12
	ulLine := lineInRow == 14
	cursorBlink := frame&(1<<3) != 0
	charBlink := frame&(1<<4) != 0

	var pixels uint16
	switch {
	case (ulLine && attrs&(1<<3) != 0) ||
		(cursorLine && cursorBlink && attrs&(1<<0) != 0):
		pixels = 0xffff
	case charBlink && attrs&(1<<2) != 0:
		pixels = 0
	default:
		pixels = uint16(c.chargenRow(code, lineInRow, altFont)&0x7f) << 1
	}
	if attrs&(1<<1) != 0 {
		// inverse video
		pixels = ^pixels
	}
	return pixels
}

// renderAlphaMono draws one scanline of the 80-column text screen.
func (c *Controller) renderAlphaMono(scan, lineInRow int, buffIdx bool) {
	buff := c.buff(buffIdx)
	if !buff.full {
		c.blanked = true
	}

	if c.blanked {
		for i := 0; i < videoHBStart; i++ {
			c.setPix(i, scan, 0, 0, 0)
		}
		return
	}

	for i := 0; i < videoCharColumns; i++ {
		code := buff.chars[i]
		attrs := buff.attrs[i]
		pixels := c.cellPixels(code, attrs, lineInRow, attrs&(1<<4) != 0)

		for j := 0; j < videoCharWidth; j++ {
			// single green channel, like the monochrome phosphor
			if pixels&(1<<j) != 0 {
				c.setPix(i*videoCharWidth+j, scan, 0, intAlpha, 0)
			} else {
				c.setPix(i*videoCharWidth+j, scan, 0, 0, 0)
			}
		}
	}
}

// renderGraphicsMono draws one scanline of the 560x455 graphics screen
// with the crosshair cursor overlaid.
func (c *Controller) renderGraphicsMono(scan int) {
	cnt := scan + gvVCntOff
	yc := cnt == int(c.cursorY)+6
	var yw, blink bool
	if c.cursorFS {
		yw = true
		blink = true
	} else {
		yw = cnt >= int(c.cursorY)+2 && cnt <= int(c.cursorY)+10
		blink = c.beam.FrameNumber()&(1<<3) != 0
	}

	memIdx := uint16(36 * (scan - gvVBEnd))
	for i := 0; i < gvHPixels; i += 16 {
		word := c.planes[0].Read(memIdx)
		memIdx++
		x := i
		for mask := uint16(0x8000); mask != 0; mask >>= 1 {
			cntH := x + gvHBEnd + gvHCntOff
			xc := cntH == int(c.cursorX)+6
			xw := c.cursorFS || (cntH >= int(c.cursorX)+2 && cntH <= int(c.cursorX)+10)
			if blink && ((xw && yc) || (yw && xc && c.cursorGC)) {
				c.setPix(x, scan-gvVBEnd, 0, intCursor, 0)
			} else if word&mask != 0 {
				c.setPix(x, scan-gvVBEnd, 0, intGraphic, 0)
			} else {
				c.setPix(x, scan-gvVBEnd, 0, 0, 0)
			}
			x++
		}
	}
}

// renderAlphaColor draws the text layer of one scanline on the shared
// raster. The side zones are always text-owned; in the middle zone text
// overlays graphics without dominating it.
func (c *Controller) renderAlphaColor(scan, lineInRow int, buffIdx bool) {
	buff := c.buff(buffIdx)
	if !buff.full {
		c.blanked = true
	}

	if c.blanked || !c.alphaSel {
		for i := 0; i < video770AlphaLLim; i++ {
			c.setPix(i, scan, 0, 0, 0)
		}
		if !c.graphicSel {
			for i := video770AlphaLLim; i < video770AlphaRLim; i++ {
				c.setPix(i, scan, 0, 0, 0)
			}
		}
		for i := video770AlphaRLim; i < FrameWidth; i++ {
			c.setPix(i, scan, 0, 0, 0)
		}
		return
	}

	for i := 0; i < videoCharColumns; i++ {
		code := buff.chars[i] & 0x7f
		attrs := buff.attrs[i]
		// bit 7 of the character selects the alternate font
		pixels := c.cellPixels(code, attrs, lineInRow, buff.chars[i]&(1<<7) != 0)
		fr, fg, fb := rgb((attrs>>4)&7, intAlpha)

		for j := 0; j < videoCharWidth; j++ {
			pixel := pixels&(1<<j) != 0
			x := i*videoCharWidth + j
			if c.graphicSel && x >= video770AlphaLLim && x < video770AlphaRLim {
				// alpha overlays graphics (non-dominating)
				if pixel {
					c.setPix(x, scan, fr, fg, fb)
				}
			} else {
				if pixel {
					c.setPix(x, scan, fr, fg, fb)
				} else {
					c.setPix(x, scan, 0, 0, 0)
				}
			}
		}
	}
}

// renderGraphicsColor draws one scanline of the three planes mapped
// through the music memory, with the graphics cursor or the light pen
// crosshair overlaid.
func (c *Controller) renderGraphicsColor(scan int) {
	yc := scan+42 == int(c.cursorY)
	var yw, blink bool

	// color mapping of the three planes
	pen0 := uint8(c.musicMemory&0x001) |
		uint8((c.musicMemory&0x008)>>2) |
		uint8((c.musicMemory&0x040)>>4)
	pen1 := uint8((c.musicMemory&0x002)>>1) |
		uint8((c.musicMemory&0x010)>>3) |
		uint8((c.musicMemory&0x080)>>5)
	pen2 := uint8((c.musicMemory&0x004)>>2) |
		uint8((c.musicMemory&0x020)>>4) |
		uint8((c.musicMemory&0x100)>>6)

	// 49 pixel light pen crosshair when its cursor is on screen
	lpCursor := c.lp.cursorX < FrameWidth && c.lp.cursorY < gvVPixels
	if lpCursor {
		yc = scan == int(c.lp.cursorY)+24
		if c.lp.cursorFS {
			yw = true
		} else {
			yw = scan >= int(c.lp.cursorY) && scan <= int(c.lp.cursorY)+49
		}
		blink = true
	} else if c.cursorFS {
		yw = true
		blink = true
	} else {
		// 15 pixel crosshair split around the center
		yw = (scan+50 > int(c.cursorY) && scan+50 < int(c.cursorY)+7) ||
			(scan+50 > int(c.cursorY)+9 && scan+50 < int(c.cursorY)+16)
		if c.cursorGC {
			blink = true
		} else {
			blink = c.beam.FrameNumber()&(1<<3) != 0
		}
	}

	curR, curG, curB := rgb(c.cursorColor, intCursor)

	memIdx := memAddr(0, uint16(scan), colorWordsPerRow)
	for i := 0; i < gvHPixels; i += 16 {
		word0 := c.planes[0].Read(memIdx)
		word1 := c.planes[1].Read(memIdx)
		word2 := c.planes[2].Read(memIdx)
		memIdx++
		x := i
		for mask := uint16(0x8000); mask != 0; mask >>= 1 {
			xc := false
			xw := false
			if lpCursor {
				xc = x+video770AlphaLLim == int(c.lp.cursorX)
				xw = c.lp.cursorFS ||
					(x+24+video770AlphaLLim >= int(c.lp.cursorX) &&
						x+video770AlphaLLim-25 <= int(c.lp.cursorX))
			} else if c.cursorGC {
				xc = x+61 == int(c.cursorX)
				xw = c.cursorFS ||
					(x+69 > int(c.cursorX) && x+53 < int(c.cursorX) &&
						(x+62 < int(c.cursorX) || x+60 > int(c.cursorX)))
			}
			if blink && ((xw && yc) || (yw && xc && (c.cursorGC || lpCursor))) {
				// cursor overlay; the light pen crosshair is white
				if lpCursor {
					c.setPix(video770AlphaLLim+x, scan, intCursor, intCursor, intCursor)
				} else {
					c.setPix(video770AlphaLLim+x, scan, curR, curG, curB)
				}
			} else {
				var color uint8
				if word0&mask != 0 {
					color |= pen0
				}
				if word1&mask != 0 {
					color |= pen1
				}
				if word2&mask != 0 {
					color |= pen2
				}
				r, g, b := rgb(color, intGraphic)
				c.setPix(video770AlphaLLim+x, scan, r, g, b)
			}
			x++
		}
	}
}
