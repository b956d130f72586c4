package beam

import "time"

// Raster describes one scan geometry: dot clock, total counts and the
// vertical extent of the active area within the frame.
type Raster struct {
	DotClockHz int
	HTotal     int
	VTotal     int
	VBEnd      int // first active scanline
	VBStart    int // first blanked scanline after the active area
}

// Beam tracks the CRT beam position on a dot-clock time base. It is the
// timing source collaborator of the display controller: the controller
// reads positions from it and converts arbiter delays into absolute
// deadlines via Now.
type Beam struct {
	raster Raster
	hpos   int
	vpos   int
	frame  uint64
}

func New(r Raster) *Beam {
	return &Beam{raster: r}
}

// Reconfigure switches the scan geometry (dual-raster controllers change
// geometry when toggling between alpha and graphics mode) and restarts
// the frame from the top.
func (b *Beam) Reconfigure(r Raster) {
	b.raster = r
	b.hpos = 0
	b.vpos = 0
}

func (b *Beam) Raster() Raster      { return b.raster }
func (b *Beam) HPos() int           { return b.hpos }
func (b *Beam) VPos() int           { return b.vpos }
func (b *Beam) FrameNumber() uint64 { return b.frame }

// SetFrameNumber restores the frame counter (used by save states; the
// frame parity drives cursor and character blinking).
func (b *Beam) SetFrameNumber(n uint64) { b.frame = n }

// SetPos places the beam at an arbitrary position on the current frame.
func (b *Beam) SetPos(v, h int) {
	if v < 0 || v >= b.raster.VTotal {
		v = 0
	}
	if h < 0 || h >= b.raster.HTotal {
		h = 0
	}
	b.vpos = v
	b.hpos = h
}

// NextLine advances to the start of the next scanline, wrapping to a new
// frame after the last one.
func (b *Beam) NextLine() {
	b.hpos = 0
	b.vpos++
	if b.vpos >= b.raster.VTotal {
		b.vpos = 0
		b.frame++
	}
}

func (b *Beam) dotPeriod() time.Duration {
	return time.Duration(float64(time.Second) / float64(b.raster.DotClockHz))
}

// Now returns the elapsed emulated time since beam reset.
func (b *Beam) Now() time.Duration {
	dots := int64(b.frame)*int64(b.raster.HTotal)*int64(b.raster.VTotal) +
		int64(b.vpos)*int64(b.raster.HTotal) + int64(b.hpos)
	return time.Duration(dots) * b.dotPeriod()
}

// TimeUntilPos returns the delay until the beam next reaches (v, h).
// A position at or before the current one resolves to the next frame.
func (b *Beam) TimeUntilPos(v, h int) time.Duration {
	cur := int64(b.vpos)*int64(b.raster.HTotal) + int64(b.hpos)
	tgt := int64(v)*int64(b.raster.HTotal) + int64(h)
	if tgt <= cur {
		tgt += int64(b.raster.HTotal) * int64(b.raster.VTotal)
	}
	return time.Duration(tgt-cur) * b.dotPeriod()
}
