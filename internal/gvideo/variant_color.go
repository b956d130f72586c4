package gvideo

import "github.com/righthere/vrmame/internal/beam"

// Color command opcodes.
const (
	cmdWriteWords  = 0x0
	cmdReadWords   = 0x1
	cmdClearWords  = 0x2
	cmdLoadX       = 0x8
	cmdLoadY       = 0x9
	cmdMemControl  = 0xa
	cmdLineType    = 0xb
	cmdMusicMemory = 0xc
	cmdEndPoints   = 0xd
	cmdCursorY     = 0xe
	cmdCursorX     = 0xf
)

const colorWordsPerRow = 35

// colorVariant is the color controller: three 16K planes on a shared
// 720x455 raster, vector generator, light pen interface.
type colorVariant struct{}

func (colorVariant) Name() string { return "color" }

func (colorVariant) Planes() int { return 3 }

func (colorVariant) Raster(*Controller) beam.Raster {
	return beam.Raster{
		DotClockHz: video770PixelClock,
		HTotal:     video770HTotal,
		VTotal:     video770VTotal,
		VBEnd:      video770VBEnd,
		VBStart:    video770VBStart,
	}
}

func (colorVariant) Reset(c *Controller) {
	c.setVideoMarColor(0)
	// default mapping: plane 1 red, plane 2 green, plane 3 blue
	c.musicMemory = 0x1 | 0x2<<3 | 0x4<<6
	c.cursorColor = 7
	c.lp.reset()
}

func (colorVariant) commandsEnabled(c *Controller) bool { return c.grEn }

func (colorVariant) ready(c *Controller) bool {
	if c.lp.intEn && c.lp.status {
		return true
	}
	if !c.grEn {
		return false
	}
	switch c.fsm {
	case StateWaitDS0, StateWaitTrig0, StateWaitDS1, StateWaitDS2, StateWaitTrig1:
		return true
	}
	return false
}

func (colorVariant) readData(c *Controller) uint16 {
	if c.lp.enabled {
		return c.lpReadData()
	}
	return c.dataR
}

func (colorVariant) dataWritten(c *Controller, data uint16) {
	c.lpWriteData(data)
}

func (colorVariant) readStatus(c *Controller) uint16 {
	var res uint16
	if c.intEn {
		res |= 1 << 7
	}
	if c.dmaEn {
		res |= 1 << 6
	}
	if c.lp.status && c.lp.intEn {
		res |= 1 << 0 // light pen service request
	}
	if c.skStatus {
		res |= 1 << 1 // softkey service request
		c.skStatus = false
	}
	res |= 1 << 11 // ID
	c.updateSignals()
	return res
}

func (colorVariant) writeStatus(c *Controller, data uint16) {
	c.cmd = uint8(data & 0xf)
	c.dmaEn = data&(1<<6) != 0
	c.intEn = data&(1<<7) != 0
	c.grEn = data&(1<<8) != 0   // command processing and write DMA
	c.skEn = data&(1<<9) != 0   // softkey reads on R4 and softkey IRQs
	c.optEn = data&(1<<11) != 0 // graphics option
	c.dsaEn = data&(1<<12) != 0 // display start/stop addressing
	if data&(1<<5) != 0 {
		c.fsm = StateReset
	}
	c.advance(false, false)
	c.lpWriteStatus(data)
}

// checkIOCounterRestore reloads the I/O counter from the X/Y pointer
// registers when the active streaming command changes. The counter has
// advanced past the word consumed by the previous command, so the plane
// index is stepped back one notch, using the wrap flag to recover a
// plane 0 -> 2 rollback.
func (c *Controller) checkIOCounterRestore() {
	if c.lastCmd == c.cmd {
		return
	}
	c.ioCursor = memAddr(c.wordX, c.wordY, colorWordsPerRow)
	if c.planeWrap {
		c.plane = 2
	} else if c.plane > 0 {
		c.plane--
	}
	c.lastCmd = c.cmd
}

// advanceIOCounter cycles planes 0 -> 1 -> 2 before moving the address
// forward; at the top of memory it saturates on plane 2.
func (c *Controller) advanceIOCounter() {
	c.plane++
	if c.plane > 2 {
		if c.ioCursor < gvAddrMask {
			c.plane = 0
			c.ioCursor++
		} else {
			c.plane = 2
		}
		c.planeWrap = true
	}
}

func (colorVariant) step(c *Controller, ds, trigger bool) bool {
	actTrig := trigger || c.intEn || c.cmd&(1<<0) == 0

	switch c.fsm {
	case StateWaitDS0:
		if c.cmd == cmdReadWords {
			c.checkIOCounterRestore()
			c.fsm = StateWaitMem0
			c.lastCmd = c.cmd
		} else if ds {
			if c.cmd == cmdWriteWords || c.cmd == cmdClearWords {
				c.checkIOCounterRestore()
				c.fsm = StateWaitTrig1
			} else {
				c.fsm = StateWaitTrig0
			}
			c.lastCmd = c.cmd
		} else {
			return true
		}

	case StateWaitTrig0:
		if !actTrig {
			return true
		}
		switch c.cmd {
		case cmdLoadX:
			c.wordX = ^c.dataW & 0x3f // 0..34
			c.ioCursor = memAddr(c.wordX, c.wordY, colorWordsPerRow)
			c.plane = 0
			c.planeWrap = false
		case cmdLoadY:
			c.wordY = ^c.dataW & 0x1ff // 0..454
			c.ioCursor = memAddr(c.wordX, c.wordY, colorWordsPerRow)
			c.plane = 0
			c.planeWrap = false
		case cmdMemControl:
			c.memControl = c.dataW & 0x7f
		case cmdLineType:
			c.lineTypeAreaFill = c.dataW & 0x1ff
			if c.lineTypeAreaFill&(1<<4) != 0 {
				c.lineTypeMask = lineType[c.lineTypeAreaFill&0x7]
				c.repeatCount = 0
			}
		case cmdMusicMemory:
			c.musicMemory = c.dataW & 0x1ff
		case cmdEndPoints:
			c.ypt = ^c.dataW & 0x1ff
		case cmdCursorY:
			c.cursorColor = uint8(^c.dataW & 0x7)
			c.cursorY = 1073 - c.dataW>>6
			if c.cursorFS {
				c.cursorY -= 8
			}
		case cmdCursorX:
			c.cursorFS = c.dataW&(1<<0) != 0
			c.cursorGC = c.dataW&(1<<1) != 0 || c.cursorFS
			c.cursorX = (c.dataW>>6)&0x3ff - 42
			if c.cursorFS {
				c.cursorX -= 8
			}
		default:
			c.logf("unknown command = %d, parm = 0x%04x", c.cmd, c.dataW)
		}
		if c.cmd == cmdEndPoints {
			c.fsm = StateWaitDS2 // second data word follows
		} else {
			c.fsm = StateWaitDS0
			return true
		}

	case StateWaitMem0:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		c.dataR = c.planes[c.plane].Read(c.ioCursor)
		c.advanceIOCounter()
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
		switch c.cmd {
		case cmdEndPoints:
			c.xpt = ^c.dataW & 0x3ff
			if c.dataW&(1<<10) != 0 {
				// draw vector
				c.fsm = StateWaitMem2
			} else {
				// move only
				c.lastXpt = c.xpt
				c.lastYpt = c.ypt
				c.fsm = StateWaitDS0
			}
		case cmdClearWords:
			if c.memControl&(1<<(c.plane+3)) != 0 {
				c.dataW = 0xffff
			} else {
				c.dataW = 0
			}
			c.fsm = StateWaitMem1
		case cmdWriteWords:
			c.fsm = StateWaitMem1
		default:
			// only reachable when the command register was rewritten
			// mid-transfer; abort instead of spinning
			c.protocolFault()
			return true
		}

	case StateWaitMem1:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		if c.cmd == cmdWriteWords || c.memControl&(1<<c.plane) != 0 {
			c.planes[c.plane].Write(c.ioCursor, c.dataW)
		}
		c.advanceIOCounter()
		c.fsm = StateWaitDS2

	case StateWaitMem2:
		if d := c.timeToMemAvailability(); d != 0 {
			c.scheduleWake(d)
			return true
		}
		if c.lineTypeAreaFill&(1<<4) != 0 {
			// the vector generator normalizes so that x grows
			if c.xpt > c.lastXpt {
				c.drawLine(int(c.lastXpt), int(c.lastYpt), int(c.xpt), int(c.ypt))
			} else {
				c.drawLine(int(c.xpt), int(c.ypt), int(c.lastXpt), int(c.lastYpt))
			}
		} else {
			c.patternFill(c.xpt, c.ypt, c.lastXpt, c.lastYpt)
		}
		c.lastXpt = c.xpt
		c.lastYpt = c.ypt
		c.fsm = StateWaitDS0

	default:
		c.protocolFault()
	}

	return false
}

func (colorVariant) scanline(c *Controller, scan int) {
	if scan < video770VBEnd || scan >= video770VBStart {
		return
	}
	if c.graphicSel {
		c.renderGraphicsColor(scan - video770VBEnd)
	}
	row := (scan - video770VBEnd) / videoCharHeight
	lineInRow := (scan - video770VBEnd) - row*videoCharHeight
	if lineInRow == 0 {
		// start of row, swap buffers
		c.buffIdx = !c.buffIdx
		c.fetchRowColor(!c.buffIdx)
	}
	c.renderAlphaColor(scan, lineInRow, c.buffIdx)
}

func (colorVariant) vblank(c *Controller, entering bool) {
	if !entering {
		c.lp.vblank = false
		return
	}
	c.setVideoMarColor(0)
	c.loadMAR = true
	c.firstMAR = true
	c.blanked = false
	c.buffIdx = !c.buffIdx
	c.fetchRowColor(!c.buffIdx)

	c.lpVBlankSample()
}
