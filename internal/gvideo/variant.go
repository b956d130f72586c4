package gvideo

import "github.com/righthere/vrmame/internal/beam"

// Variant bundles the behavior that differs between the two controller
// generations: the monochrome controller (single plane, dual raster,
// byte-packed text stream) and the color controller (three planes,
// shared raster, vector generator, light pen). The FSM driver, the
// register interface and the frame loop stay generation-neutral and
// dispatch through this interface.
type Variant interface {
	Name() string
	Planes() int
	Raster(c *Controller) beam.Raster

	// Reset applies variant register defaults at power-on.
	Reset(c *Controller)

	// commandsEnabled gates FSM processing (the color controller
	// ignores everything until graphics are enabled).
	commandsEnabled(c *Controller) bool

	// step performs one FSM transition and reports whether the
	// run-to-fixpoint loop should stop.
	step(c *Controller, ds, trigger bool) bool

	// ready is the variant's Ready-line equation.
	ready(c *Controller) bool

	readData(c *Controller) uint16
	dataWritten(c *Controller, data uint16)
	readStatus(c *Controller) uint16
	writeStatus(c *Controller, data uint16)

	// scanline runs fetch and render work for one visible scanline.
	scanline(c *Controller, scan int)

	// vblank handles both edges of the vertical blanking signal.
	vblank(c *Controller, entering bool)
}

// MonoVariant is the monochrome controller generation.
func MonoVariant() Variant { return monoVariant{} }

// ColorVariant is the color controller generation.
func ColorVariant() Variant { return colorVariant{} }
