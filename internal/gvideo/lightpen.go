package gvideo

import "math"

// lightPen models the light pen interface of the color controller: a
// crosshair cursor on screen, a circular field of view around the pen
// tip, and three hit words (YHI, XLEFT, YLO) read back through R4 under
// control of a register-select down counter.
type lightPen struct {
	enabled    bool
	intEn      bool
	status     bool
	regCnt     uint8
	selftest   bool
	xwindow    bool
	ywindow    bool
	interlace  bool
	vblank     bool
	firstHit   bool
	vbint      bool
	fullbright bool
	threshold  bool
	x, y       uint16
	sw         bool
	cursorX    uint16
	cursorY    uint16
	cursorFS   bool
	data       [3]uint16
}

func (lp *lightPen) reset() {
	*lp = lightPen{
		cursorX: 944,
		cursorY: 50,
	}
}

// lpWriteStatus decodes the light pen fields of an R5 command word.
func (c *Controller) lpWriteStatus(data uint16) {
	c.lp.regCnt = uint8(data & 7)
	c.lp.enabled = data&0x700 == 0x400
	c.lp.intEn = data&0x500 == 0x400
	c.lp.selftest = c.lp.enabled && c.lp.regCnt == 7
	c.updateSignals()
}

// lpWriteData handles R4/R6 writes while the light pen is enabled: the
// register counter selects which cursor parameter word is loaded.
func (c *Controller) lpWriteData(data uint16) {
	if !c.lp.enabled {
		return
	}
	switch c.lp.regCnt {
	case 2:
		// Y cursor + threshold + interlace + vblank interrupt
		c.lp.cursorY = (^data >> 6) & 0x1ff
		c.lp.fullbright = data&(1<<1) != 0
		c.lp.threshold = data&(1<<3) != 0
		c.lp.interlace = data&(1<<4) == 0
		c.lp.vbint = data&(1<<5) == 0
		c.lp.regCnt--
	case 3:
		// X cursor + cursor type
		c.lp.cursorX = (data>>6)&0x3ff + 1
		c.lp.cursorFS = data&(1<<0) == 0
		c.lp.regCnt--
	default:
		c.logf("writing to unmapped LP register %d", c.lp.regCnt)
	}
}

// lpReadData returns the hit words in YHI, XLEFT, YLO order as the
// register counter runs down from 6 to 4. Reading YLO retires the
// service request.
func (c *Controller) lpReadData() uint16 {
	var res uint16
	switch c.lp.regCnt {
	case 6:
		// YHI
		res = c.lp.data[0]
		if !c.lp.vblank {
			res |= 1 << 12
		}
		if c.lp.sw {
			res |= 1 << 14
		}
		if c.lp.firstHit {
			res |= 1 << 15
		}
		c.lp.regCnt--
	case 5:
		// XLEFT
		res = c.lp.data[1]
		c.lp.regCnt--
	case 4:
		// YLO
		res = c.lp.data[2]
		c.lp.regCnt--
		c.lp.status = false
		c.lp.firstHit = false
		c.updateSignals()
	default:
		c.logf("reading from unmapped LP register %d", c.lp.regCnt)
	}
	return res
}

// lpVBlankSample latches the pointer position at the vertical blanking
// edge and computes the hit words for the frame just finished.
func (c *Controller) lpVBlankSample() {
	c.lp.vblank = true
	c.lp.xwindow = false
	c.lp.ywindow = false
	if c.pointer != nil {
		x, y, sw := c.pointer.Sample()
		if x < 0 {
			x = 0
		}
		if x > FrameWidth-1 {
			x = FrameWidth - 1
		}
		if y < 0 {
			y = 0
		}
		if y > gvVPixels-1 {
			y = gvVPixels - 1
		}
		c.lp.x = uint16(x)
		c.lp.y = uint16(y)
		c.lp.sw = sw
	}
	c.computeLPData()
	if c.lp.vbint {
		c.lp.status = true
	}
	c.updateSignals()
}

// computeLPData derives the YHI/XLEFT/YLO hit coordinates from the
// intersection of the circular field of view around the pen tip with
// the crosshair cursor. Hit word flags: bit 11 no service request,
// bit 13 outside X window, bit 14 outside Y window (XLEFT and YLO).
func (c *Controller) computeLPData() {
	c.lp.status = true
	if c.lp.selftest {
		offset := 57 - video770AlphaLLim
		c.lp.xwindow = true
		c.lp.ywindow = true
		c.lp.data[0] = uint16(^(int(c.lp.cursorY) + 16)) & 0x1ff // YHI
		c.lp.data[1] = uint16(^(int(c.lp.cursorX) + offset)) & 0x3ff
		c.lp.data[2] = uint16(^(int(c.lp.cursorY) + 32)) & 0x1ff // YLO
	} else {
		const fov = 9 // field of view radius around the pen tip
		xp := int(c.lp.x)
		yp := int(c.lp.y)
		xc := int(c.lp.cursorX) + 1
		yc := int(c.lp.cursorY) + 24
		var yhi, xleft, ylo int
		xoffset := 14 // longer detection delay on the bright line

		dx, dy := 0, fov
		// y extent of the intersection with the vertical cursor bar
		if d := xc - xp; d >= -fov && d <= fov {
			dy = int(math.Sqrt(float64(fov*fov - d*d)))
		}
		// x extent of the intersection with the horizontal cursor bar
		if d := yc - yp; d >= -fov && d <= fov {
			dx = int(math.Sqrt(float64(fov*fov - d*d)))
		}
		if yp+dy >= yc-24 && yp-dy <= yc-24 {
			// first and last hit on the vertical bar, clamped to the
			// window when interlace detection is on
			if yp-dy > yc-24 || !c.lp.interlace {
				yhi = yp - dy
			} else {
				yhi = yc - 24
			}
			if yp+dy < yc+24 || !c.lp.interlace {
				ylo = yp + dy
			} else {
				ylo = yc + 24
			}
		} else {
			// no intersection: simulated first/last hit in the field
			yhi = yp - fov
			ylo = yp + fov
		}
		if xp+dx >= xc-24 && xp-dx <= xc+24 {
			if xp-dx > xc-24 {
				xleft = xp - dx - fov + xoffset
			} else {
				xleft = xp + dx - fov + xoffset
			}
		} else {
			xleft = xp - fov + xoffset
		}
		c.lp.data[0] = uint16(^yhi) & 0x1ff
		c.lp.data[1] = uint16(^xleft) & 0x3ff
		c.lp.data[2] = uint16(^ylo) & 0x1ff

		if c.lp.interlace {
			c.lp.xwindow = xp > xc-24 && xp < xc+24
			c.lp.ywindow = yp > yc-24 && yp < yc+24
		} else {
			c.lp.xwindow = false
			c.lp.ywindow = false
		}
	}
	if !c.lp.xwindow {
		c.lp.data[0] |= 1 << 13
		c.lp.data[1] |= 1 << 13
		c.lp.data[2] |= 1 << 13
	}
	if !c.lp.ywindow {
		c.lp.data[1] |= 1 << 14
		c.lp.data[2] |= 1 << 14
	}
	if !c.lp.status {
		c.lp.data[0] |= 1 << 11
		c.lp.data[1] |= 1 << 11
		c.lp.data[2] |= 1 << 11
	}
	c.lp.firstHit = true
}
