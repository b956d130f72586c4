package gvideo

// Vector generator of the color controller: Bresenham line tracing
// through the current line-type mask and rectangular halftone fills,
// both writing pixels through plot so plane enables and dominance
// apply.

// plot draws or erases one pixel on every enabled plane. Memory control
// word: bits 0-2 enable planes, bits 3-5 allow drawing on them, bit 6
// selects dominance (erase wherever the pattern does not draw).
func (c *Controller) plot(x, y uint16, drawErase bool) {
	mask := pixelMask(x)
	addr := memAddr(x>>4, y, colorWordsPerRow)
	dominance := c.memControl&(1<<6) != 0

	for p := 0; p < 3; p++ {
		if c.memControl&(1<<p) == 0 {
			continue
		}
		doErase := dominance
		doDraw := drawErase
		if c.memControl&(1<<(p+3)) == 0 && drawErase {
			doDraw = false
			doErase = true
		}
		if doDraw {
			c.planes[p].SetBits(addr, mask)
		} else if doErase {
			c.planes[p].ClearBits(addr, mask)
		}
	}
}

// drawLine traces a Bresenham line from (x0,y0) to (x1,y1). Each step
// draws or erases depending on the top bit of the line-type mask, then
// rotates the pattern. Callers normalize so that x0 <= x1.
func (c *Controller) drawLine(x0, y0, x1, y1 int) {
	x, y := x0, y0
	dx := abs(x1 - x)
	sx := 1
	if x >= x1 {
		sx = -1
	}
	dy := abs(y1 - y)
	sy := 1
	if y >= y1 {
		sy = -1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}

	for {
		c.plot(uint16(x), uint16(y), c.lineTypeMask&(1<<15) != 0)
		c.updateLinePattern()

		if x == x1 && y == y1 {
			break
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x += sx
		}
		if e2 < dy {
			err += dx
			y += sy
		}
	}
}

// patternFill covers the rectangle spanned by the two endpoints with
// the selected halftone tile, one row at a time.
func (c *Controller) patternFill(x0, y0, x1, y1 uint16) {
	xmin, xmax := x0, x1
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	ymin, ymax := y0, y1
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}

	for y := ymin; y <= ymax; y++ {
		fill := fillRowMask(areaFill[c.lineTypeAreaFill&0xf], y)
		for x := xmin; x <= xmax; x++ {
			c.plot(x, y, pixelMask(x)&fill != 0)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
