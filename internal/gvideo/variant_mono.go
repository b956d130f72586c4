package gvideo

import "github.com/righthere/vrmame/internal/beam"

// monoVariant is the monochrome controller: one 16K plane, a private
// graphics raster swapped in place of the alpha raster, byte-packed
// text stream, no vector generator.
type monoVariant struct{}

func (monoVariant) Name() string { return "mono" }

func (monoVariant) Planes() int { return 1 }

func (monoVariant) Raster(c *Controller) beam.Raster {
	if c.graphicSel {
		return beam.Raster{
			DotClockHz: videoPixelClock,
			HTotal:     gvHTotal,
			VTotal:     gvVTotal,
			VBEnd:      gvVBEnd,
			VBStart:    gvVBStart,
		}
	}
	return beam.Raster{
		DotClockHz: videoPixelClock,
		HTotal:     videoHTotal,
		VTotal:     videoVTotal,
		VBEnd:      0,
		VBStart:    videoActiveScanlines,
	}
}

func (monoVariant) Reset(c *Controller) {
	c.setVideoMarMono(0)
}

func (monoVariant) commandsEnabled(*Controller) bool { return true }

func (monoVariant) ready(c *Controller) bool {
	return c.fsm == StateWaitDS0 ||
		c.fsm == StateWaitDS1 ||
		c.fsm == StateWaitDS2
}

func (monoVariant) readData(c *Controller) uint16 { return c.dataR }

func (monoVariant) dataWritten(*Controller, uint16) {}

func (monoVariant) readStatus(c *Controller) uint16 {
	var res uint16
	if c.intEn {
		res |= 1 << 7
	}
	if c.dmaEn {
		res |= 1 << 6
	}
	res |= 1 << 5 // ID
	return res
}

func (monoVariant) writeStatus(c *Controller, data uint16) {
	c.cmd = uint8(data & 0xf)
	c.dmaEn = data&(1<<6) != 0
	c.intEn = data&(1<<7) != 0
	if data&(1<<5) != 0 {
		c.fsm = StateReset
	}
	c.advance(false, false)
}

// step is one transition of the monochrome FSM. Command register
// layout: bit 3 selects memory commands, bit 2 read (with bit 3) or
// X-cursor, bit 1 clear words, bit 0 single pixel.
func (monoVariant) step(c *Controller, ds, trigger bool) bool {
	actTrig := trigger || c.dmaEn || c.cmd&(1<<2) == 0

	switch c.fsm {
	case StateWaitDS0:
		if c.cmd&0xc == 0xc {
			// read command
			c.fsm = StateWaitMem0
		} else if ds {
			c.fsm = StateWaitTrig0
		} else {
			return true
		}

	case StateWaitTrig0:
		if !actTrig {
			return true
		}
		if c.cmd&(1<<3) != 0 {
			// memory command: load I/O address
			c.ioCursor = ^c.dataW & gvAddrMask
			c.fsm = StateWaitDS2
		} else {
			// cursor command
			if c.cmd&(1<<2) != 0 {
				c.cursorX = (^c.dataW >> 6) & 0x3ff
			} else {
				c.cursorY = (^c.dataW >> 6) & 0x1ff
				c.cursorGC = c.cmd&(1<<1) == 0
				c.cursorFS = c.cmd&(1<<0) != 0
			}
			c.fsm = StateWaitDS0
		}

	case StateWaitMem0:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		c.dataR = c.planes[0].Read(c.ioCursor)
		c.ioCursor = (c.ioCursor + 1) & gvAddrMask
		c.fsm = StateWaitDS1

	case StateWaitDS1:
		if !ds {
			return true
		}
		c.fsm = StateWaitMem0

	case StateWaitDS2:
		if !ds {
			return true
		}
		c.fsm = StateWaitTrig1

	case StateWaitTrig1:
		if !actTrig {
			return true
		}
		if c.cmd&(1<<1) != 0 {
			// clear words
			c.dataW = 0
			c.fsm = StateWaitMem1
		} else if c.cmd&(1<<0) != 0 {
			// single pixel
			c.fsm = StateWaitMem2
		} else {
			// write words
			c.fsm = StateWaitMem1
		}

	case StateWaitMem1:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		c.planes[0].Write(c.ioCursor, c.dataW)
		c.ioCursor = (c.ioCursor + 1) & gvAddrMask
		c.fsm = StateWaitDS2

	case StateWaitMem2:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		// data word: bit 15 set/clear, low nibble pixel-in-word
		mask := pixelMask(c.dataW)
		if c.dataW&(1<<15) != 0 {
			c.planes[0].SetBits(c.ioCursor, mask)
		} else {
			c.planes[0].ClearBits(c.ioCursor, mask)
		}
		c.ioCursor = (c.ioCursor + 1) & gvAddrMask
		c.fsm = StateWaitDS0

	default:
		c.protocolFault()
	}

	return false
}

func (monoVariant) scanline(c *Controller, scan int) {
	if c.graphicSel {
		if scan >= gvVBEnd && scan < gvVBStart {
			c.renderGraphicsMono(scan)
		}
		return
	}
	if scan < videoActiveScanlines {
		row := scan / videoCharHeight
		lineInRow := scan - row*videoCharHeight
		if lineInRow == 0 {
			// start of row, swap buffers
			c.buffIdx = !c.buffIdx
			c.fetchRowMono(!c.buffIdx)
		}
		c.renderAlphaMono(scan, lineInRow, c.buffIdx)
	}
}

func (monoVariant) vblank(c *Controller, entering bool) {
	if !entering {
		return
	}
	c.setVideoMarMono(0)
	c.loadMAR = true
	c.firstMAR = true
	c.byteIdx = false
	c.blanked = false
	c.buffIdx = !c.buffIdx
	c.fetchRowMono(!c.buffIdx)
}
