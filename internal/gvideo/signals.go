package gvideo

// updateSignals recomputes the Ready/IRQ/DMA output levels. It runs
// after every operation that can move the FSM or touch an enable bit,
// so the outputs are always consistent with the visible state.
func (c *Controller) updateSignals() {
	ready := c.variant.ready(c)
	c.sig = Signals{
		Ready: ready,
		IRQ:   c.intEn && !c.dmaEn && ready,
		DMA:   ready && c.dmaEn,
	}
}
