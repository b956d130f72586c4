package gvideo

// Alpha buffer fetcher. The controller walks a display list in host
// memory once per text row, refilling the back half of a double
// buffer. The two generations speak different list formats: the
// monochrome controller packs two stream bytes per word with attribute
// escape codes, the color controller spends one word per cell with the
// attribute in the high byte.

// Display list windows in host memory (word addresses), exported for
// display list composition.
const (
	AlphaListBaseMono  = videoBufferBaseHigh
	AlphaListBaseColor = videoBufferBaseLow
)

func (c *Controller) setVideoMarMono(mar uint32) {
	c.mar = mar&0xfff | videoBufferBaseHigh
}

func (c *Controller) setVideoMarColor(mar uint32) {
	c.mar = mar&0x1fff | videoBufferBaseLow
}

func (c *Controller) readVideoWord() uint16 {
	if c.mem == nil {
		return 0
	}
	return c.mem.ReadWord(c.mar)
}

// fetchRowMono refills one row buffer from the byte-packed stream.
// Byte codes: 10xxxxxx loads the attribute latch, 11xxxxx0 is a new
// word address, 11xxxxx1 ends the line, anything else is a character.
func (c *Controller) fetchRowMono(buffIdx bool) {
	buff := c.buff(buffIdx)
	buff.full = false

	charIdx := 0
	iters := 0
	var b byte

	for {
		if !c.byteIdx {
			if iters >= maxWordsPerRow {
				// access budget for the row exhausted
				break
			}
			iters++
			c.videoWord = c.readVideoWord()
			if c.loadMAR {
				// new address after frame start or NWA
				if c.firstMAR {
					c.setGraphicModeMono(c.videoWord&(1<<15) == 0)
					c.firstMAR = false
				}
				c.setVideoMarMono(uint32(^c.videoWord))
				c.loadMAR = false
				continue
			}
			// start parsing at the MSB
			c.setVideoMarMono(c.mar + 1)
			b = byte(c.videoWord >> 8)
			c.byteIdx = true
		} else {
			b = byte(c.videoWord)
			c.byteIdx = false
		}
		switch {
		case b&0xc0 == 0x80:
			// attribute
			c.videoAttr = b & 0x1f
		case b&0xc1 == 0xc0:
			// new word address (NWA)
			c.loadMAR = true
			c.byteIdx = false
		case b&0xc1 == 0xc1:
			// end of line: pad with spaces
			for ; charIdx < videoCharColumns; charIdx++ {
				buff.chars[charIdx] = 0x20
				buff.attrs[charIdx] = c.videoAttr
			}
			buff.full = true
			return
		default:
			buff.chars[charIdx] = b
			buff.attrs[charIdx] = c.videoAttr
			charIdx++
			if charIdx == videoCharColumns {
				buff.full = true
				return
			}
		}
	}
}

// fetchRowColor refills one row buffer from the word-per-cell stream.
// 0x8020 ends the line, 10xxxxxxxx0xxxxx is a new word address,
// 11xxxxxxxxxxxxxx is a NOP, anything else is attribute:character.
func (c *Controller) fetchRowColor(buffIdx bool) {
	buff := c.buff(buffIdx)
	buff.full = false

	charIdx := 0
	iters := 0

	for {
		if c.mar&0x1fff > 0x1dff {
			// end of the CRT buffer window
			break
		}
		if iters >= maxWordsPerRow {
			break
		}
		iters++
		c.videoWord = c.readVideoWord()
		if c.loadMAR {
			if c.firstMAR {
				c.setGraphicModeColor(c.videoWord&(1<<15) != 0, c.videoWord&(1<<14) != 0)
				c.firstMAR = false
			}
			c.setVideoMarColor(uint32(^c.videoWord))
			c.loadMAR = false
			continue
		}
		c.setVideoMarColor(c.mar + 1)
		switch {
		case c.videoWord == 0x8020:
			// end of line: pad with spaces
			for ; charIdx < videoCharColumns; charIdx++ {
				buff.chars[charIdx] = 0x20
				buff.attrs[charIdx] = 0
			}
			buff.full = true
			return
		case c.videoWord&0xc020 == 0x8000:
			// new word address (NWA)
			c.loadMAR = true
		case c.videoWord&0xc000 == 0xc000:
			// NOP
		default:
			buff.chars[charIdx] = byte(c.videoWord)
			buff.attrs[charIdx] = byte(c.videoWord >> 8)
			charIdx++
			if charIdx == videoCharColumns {
				buff.full = true
				return
			}
		}
	}
}

func (c *Controller) buff(idx bool) *rowBuffer {
	if idx {
		return &c.videoBuff[1]
	}
	return &c.videoBuff[0]
}

// setGraphicModeMono swaps between the alpha raster and the private
// graphics raster. The beam geometry change is picked up by the frame
// loop through Raster.
func (c *Controller) setGraphicModeMono(graphic bool) {
	if graphic != c.graphicSel {
		c.graphicSel = graphic
		c.logf("GS=%v", graphic)
	}
}

// setGraphicModeColor latches the per-frame display enables; both
// layers share one raster.
func (c *Controller) setGraphicModeColor(graphic, alpha bool) {
	c.graphicSel = graphic
	c.alphaSel = alpha
}
