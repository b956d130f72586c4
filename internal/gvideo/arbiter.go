package gvideo

import "time"

// Memory access windows on the graphics raster. The drawing logic can
// only touch plane memory while the beam is in horizontal blanking.
const (
	memWindowEnd   = 34 - gvHCntOff  // first contended dot of a line
	memWindowStart = 628 - gvHCntOff // hblank begins, memory free again
)

// timeToMemAvailability returns how long the FSM has to stall before a
// plane memory access can be performed. Zero when the beam is already
// in blanking or when the graphics display is off.
func (c *Controller) timeToMemAvailability() time.Duration {
	if !c.graphicSel {
		return 0
	}
	hpos := c.beam.HPos()
	if hpos < memWindowEnd || hpos >= memWindowStart {
		return 0
	}
	return c.beam.TimeUntilPos(c.beam.VPos(), memWindowStart)
}
