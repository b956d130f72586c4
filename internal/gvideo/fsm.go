package gvideo

// advance runs the command FSM to a fixpoint. ds is true when the event
// is a data strobe (R4/R6 access), trigger when it is an R7 access;
// both are consumed by the first transition. A transition that needs
// plane memory while the beam contends for it schedules a wake-up
// instead of blocking; Resume re-enters here once the deadline passes.
func (c *Controller) advance(ds, trigger bool) {
	if !c.variant.commandsEnabled(c) {
		return
	}
	for {
		getOut := c.variant.step(c, ds, trigger)
		ds = false
		trigger = false
		if getOut {
			break
		}
	}
	c.updateSignals()
}

// State reports the current FSM state (diagnostics and tests).
func (c *Controller) State() State { return c.fsm }
