package gvideo

// Register offsets within the controller's select code.
const (
	RegData    = 0 // R4: data
	RegStatus  = 1 // R5: command (write) / status (read)
	RegDataTC  = 2 // R6: data with DMA terminal count
	RegTrigger = 3 // R7: trigger (write only)
)

// ReadRegister performs a host read cycle on one of the four registers.
// Data reads double as data strobes and advance the FSM.
func (c *Controller) ReadRegister(reg int) uint16 {
	var res uint16

	switch reg & 3 {
	case RegData:
		res = c.variant.readData(c)
		c.advance(true, false)

	case RegStatus:
		res = c.variant.readStatus(c)

	case RegDataTC:
		// terminal count: reading R6 ends the DMA transfer
		c.dmaEn = false
		res = c.variant.readData(c)
		c.advance(true, false)

	case RegTrigger:
		// not mapped
	}

	return res
}

// WriteRegister performs a host write cycle on one of the four
// registers. Data writes double as data strobes; an R7 write is the
// trigger event.
func (c *Controller) WriteRegister(reg int, data uint16) {
	switch reg & 3 {
	case RegData:
		c.dataW = data
		c.advance(true, false)
		c.variant.dataWritten(c, data)

	case RegStatus:
		c.variant.writeStatus(c, data)

	case RegDataTC:
		c.dmaEn = false
		c.dataW = data
		c.advance(true, false)
		c.variant.dataWritten(c, data)

	case RegTrigger:
		c.advance(false, true)
	}
}
