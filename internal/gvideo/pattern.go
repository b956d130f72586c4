package gvideo

// Line-type masks, indexed by the low 3 bits of the line-type register.
// Bit 15 first; the mask rotates left as the vector is traced.
var lineType = [8]uint16{
	0xffff, // solid
	0xaaaa, // dotted
	0xff00, // dashed
	0xfff0,
	0xfffa,
	0xfff6,
	0xffb6,
	0x0000, // blank
}

// Area-fill halftone masks, indexed by the low 4 bits of the area-fill
// register. Each mask is a 4x4 tile packed row-major, densest first.
var areaFill = [16]uint16{
	0xffff,
	0xefff,
	0xefbf,
	0xefaf,
	0xafaf,
	0xadaf,
	0xada7,
	0xada5,
	0xa5a5,
	0xa4a5,
	0xa4a1,
	0xa4a0,
	0xa0a0,
	0x80a0,
	0x8020,
	0x8000,
}

// updateLinePattern rotates the line-type mask one position after the
// configured repeat count of pixels has been drawn with the current
// mask bit.
func (c *Controller) updateLinePattern() {
	c.repeatCount++
	if uint16(c.repeatCount) > (c.lineTypeAreaFill>>5)&0xf {
		c.lineTypeMask = (c.lineTypeMask << 1) | (c.lineTypeMask >> 15)
		c.repeatCount = 0
	}
}

// fillRowMask expands the 4x4 halftone tile into a 16-bit row mask for
// scanline y: the tile row is replicated across all four nibbles.
func fillRowMask(pattern uint16, y uint16) uint16 {
	m := (pattern << ((y % 4) * 4)) & 0xf000
	m |= (m >> 4) | (m >> 8) | (m >> 12)
	return m
}
