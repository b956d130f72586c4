package gvideo

import (
	"time"

	"github.com/righthere/vrmame/internal/beam"
)

// Geometry of the graphics raster, shared by all controller variants.
// The horizontal counter counts [1..727], the vertical one [34..511].
const (
	gvHTotal   = 727
	gvHCntOff  = 1
	gvHBEnd    = 69 - gvHCntOff
	gvHPixels  = 560
	gvHBStart  = gvHBEnd + gvHPixels
	gvVTotal   = 478
	gvVCntOff  = 34
	gvVBEnd    = 50 - gvVCntOff
	gvVPixels  = 455
	gvVBStart  = gvVBEnd + gvVPixels
	gvMemSize  = 16384
	gvAddrMask = gvMemSize - 1
)

// Alpha video geometry (monochrome alpha raster).
const (
	videoPixelClock      = 20849400
	videoCharWidth       = 9
	videoCharHeight      = 15
	videoCharColumns     = 80
	videoCharTotal       = 99
	videoCharRows        = 25
	videoRowsTotal       = 26
	videoHBStart         = videoCharWidth * videoCharColumns
	videoHTotal          = videoCharWidth * videoCharTotal
	videoVTotal          = videoCharHeight * videoRowsTotal
	videoActiveScanlines = videoCharHeight * videoCharRows
	videoTotHPixels      = videoCharWidth * videoCharColumns
)

// Geometry of the color (98770-style) shared raster.
const (
	video770PixelClock = 29798400
	video770HTotal     = 1024
	video770HBEnd      = 0
	video770HBStart    = videoCharColumns * videoCharWidth
	video770VTotal     = 485
	video770VBEnd      = 0
	video770VBStart    = video770VBEnd + gvVPixels
	video770AlphaLLim  = 80  // left limit of the alpha-only zone
	video770AlphaRLim  = 640 // right limit of the alpha-only zone
)

// Base word addresses of the alpha display list in host memory.
const (
	videoBufferBaseLow  = 0x16000 // color
	videoBufferBaseHigh = 0x17000 // monochrome
)

// maxWordsPerRow is the fetch budget per text row. Exhausting it without
// an end-of-line marker blanks the rest of the frame; the self-test ROM
// relies on this staying below 234.
const maxWordsPerRow = 220

// Frame dimensions of the rendered bitmap (largest raster).
const (
	FrameWidth  = 720
	FrameHeight = 455
)

// State is the FSM state of the command protocol.
type State uint8

const (
	StateWaitDS0 State = iota // also the reset state
	StateWaitTrig0
	StateWaitMem0
	StateWaitDS1
	StateWaitDS2
	StateWaitTrig1
	StateWaitMem1
	StateWaitMem2

	StateReset = StateWaitDS0
)

func (s State) String() string {
	switch s {
	case StateWaitDS0:
		return "WAIT_DS_0"
	case StateWaitTrig0:
		return "WAIT_TRIG_0"
	case StateWaitMem0:
		return "WAIT_MEM_0"
	case StateWaitDS1:
		return "WAIT_DS_1"
	case StateWaitDS2:
		return "WAIT_DS_2"
	case StateWaitTrig1:
		return "WAIT_TRIG_1"
	case StateWaitMem1:
		return "WAIT_MEM_1"
	case StateWaitMem2:
		return "WAIT_MEM_2"
	default:
		return "INVALID"
	}
}

// Beam provides the current beam position and the timing math needed to
// schedule deferred memory accesses.
type Beam interface {
	HPos() int
	VPos() int
	FrameNumber() uint64
	Now() time.Duration
	TimeUntilPos(v, h int) time.Duration
}

// HostMemory is the word-addressed host RAM the alpha fetcher walks.
type HostMemory interface {
	ReadWord(addr uint32) uint16
}

// Pointer supplies the light-pen position and button state; it is
// sampled once per frame at the vertical-blank edge.
type Pointer interface {
	Sample() (x, y int, pressed bool)
}

// CharGen is a character generator table: one 7-bit pixel row per
// character code and in-row scanline.
type CharGen interface {
	Row(code byte, line int) byte
}

// Signals are the level outputs toward the host interrupt controller,
// recomputed after every state-affecting operation.
type Signals struct {
	Ready bool // "flag" line: a new strobe is expected
	IRQ   bool // Ready && interrupt enabled && !DMA enabled
	DMA   bool // Ready && DMA enabled
}

// rowBuffer is one side of the double-buffered text row.
type rowBuffer struct {
	chars [videoCharColumns]byte
	attrs [videoCharColumns]byte
	full  bool
}

// Controller is one display controller instance. All variant-specific
// behavior is routed through the Variant capability; variant-only fields
// simply stay at their zero value on the other variant.
type Controller struct {
	variant    Variant
	beam       Beam
	mem        HostMemory
	pointer    Pointer
	chargen    CharGen
	optChargen CharGen
	logf       func(format string, args ...any)

	planes []Plane
	bitmap []byte // RGBA FrameWidth x FrameHeight

	// command protocol
	fsm      State
	cmd      uint8
	lastCmd  uint8
	dmaEn    bool
	intEn    bool
	grEn     bool // color: gates FSM processing
	skEn     bool
	optEn    bool
	dsaEn    bool
	skStatus bool
	dataW    uint16
	dataR    uint16

	// I/O cursor
	ioCursor  uint16
	plane     int
	planeWrap bool
	wordX     uint16
	wordY     uint16

	// drawing parameters
	memControl       uint16
	lineTypeAreaFill uint16
	lineTypeMask     uint16
	repeatCount      uint8
	musicMemory      uint16
	xpt, ypt         uint16
	lastXpt, lastYpt uint16

	// graphics cursor
	cursorX, cursorY uint16
	cursorFS         bool
	cursorGC         bool
	cursorColor      uint8

	// alpha video
	videoBuff  [2]rowBuffer
	buffIdx    bool
	mar        uint32
	videoWord  uint16
	loadMAR    bool
	firstMAR   bool
	byteIdx    bool
	videoAttr  byte
	blanked    bool
	graphicSel bool
	alphaSel   bool

	lp lightPen

	sig         Signals
	wakeAt      time.Duration
	wakePending bool
}

// Config carries the collaborators of a controller.
type Config struct {
	Beam       Beam
	Memory     HostMemory
	Pointer    Pointer
	CharGen    CharGen
	OptCharGen CharGen
	Logf       func(format string, args ...any)
}

// New builds a controller for the given variant. Plane memory is sized
// once here and never reallocated.
func New(v Variant, cfg Config) *Controller {
	c := &Controller{
		variant:    v,
		beam:       cfg.Beam,
		mem:        cfg.Memory,
		pointer:    cfg.Pointer,
		chargen:    cfg.CharGen,
		optChargen: cfg.OptCharGen,
		logf:       cfg.Logf,
		bitmap:     make([]byte, FrameWidth*FrameHeight*4),
	}
	if c.chargen == nil {
		c.chargen = DefaultCharGen()
	}
	if c.optChargen == nil {
		c.optChargen = c.chargen
	}
	if c.logf == nil {
		c.logf = func(string, ...any) {}
	}
	c.planes = make([]Plane, v.Planes())
	for i := range c.planes {
		c.planes[i] = NewPlane(gvMemSize)
	}
	c.Reset()
	return c
}

// Variant returns the controller-variant capability in use.
func (c *Controller) Variant() Variant { return c.variant }

// Reset collapses the FSM to its initial state, cancels any pending
// arbiter wake-up and restores documented register defaults. Plane
// memory contents are preserved, as on the real hardware.
func (c *Controller) Reset() {
	c.fsm = StateReset
	c.intEn = false
	c.dmaEn = false
	c.grEn = false
	c.skEn = false
	c.optEn = false
	c.dsaEn = false
	c.skStatus = false
	c.wakePending = false

	c.lastCmd = 0
	c.wordX = 0
	c.wordY = 0
	c.memControl = 0
	c.lineTypeAreaFill = 0
	c.lineTypeMask = 0xffff
	c.repeatCount = 0
	c.xpt = 0
	c.ypt = 0
	c.lastXpt = 0
	c.lastYpt = 0
	c.plane = 0
	c.planeWrap = false

	c.mar = 0
	c.loadMAR = false
	c.firstMAR = false
	c.byteIdx = false
	c.buffIdx = false
	c.blanked = false
	c.videoAttr = 0
	c.graphicSel = false
	c.alphaSel = true

	c.variant.Reset(c)
	c.updateSignals()
}

// Signals returns the current output signal levels.
func (c *Controller) Signals() Signals { return c.sig }

// PendingWake reports the absolute deadline (on the beam time base) at
// which the suspended FSM wants to be resumed via Resume.
func (c *Controller) PendingWake() (time.Duration, bool) {
	return c.wakeAt, c.wakePending
}

// Resume re-enters the FSM at the waiting state after a deferred memory
// access window has been reached.
func (c *Controller) Resume() {
	c.wakePending = false
	c.advance(false, false)
}

// Bitmap exposes the rendered RGBA frame.
func (c *Controller) Bitmap() []byte { return c.bitmap }

// GraphicEnabled reports whether the graphics raster is selected.
func (c *Controller) GraphicEnabled() bool { return c.graphicSel }

// Raster returns the beam geometry currently in effect.
func (c *Controller) Raster() beam.Raster { return c.variant.Raster(c) }

// protocolFault handles an FSM internal-consistency failure: log and
// force RESET, aborting the in-flight transfer.
func (c *Controller) protocolFault() {
	c.logf("invalid state reached %d", c.fsm)
	c.fsm = StateReset
}

func (c *Controller) scheduleWake(d time.Duration) {
	c.wakeAt = c.beam.Now() + d
	c.wakePending = true
}

func (c *Controller) setPix(x, y int, r, g, b byte) {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return
	}
	i := (y*FrameWidth + x) * 4
	c.bitmap[i+0] = r
	c.bitmap[i+1] = g
	c.bitmap[i+2] = b
	c.bitmap[i+3] = 0xff
}
