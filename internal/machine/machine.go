package machine

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"

	"github.com/righthere/vrmame/internal/beam"
	"github.com/righthere/vrmame/internal/gvideo"
)

// Pointer is the machine-side light pen state, sampled by the
// controller once per frame.
type Pointer struct {
	X, Y    int
	Pressed bool
}

func (p *Pointer) Sample() (int, int, bool) { return p.X, p.Y, p.Pressed }

// Machine glues a display controller to host RAM and a beam timing
// source and steps them one frame at a time.
type Machine struct {
	cfg     Config
	ram     *RAM
	beam    *beam.Beam
	gv      *gvideo.Controller
	pointer Pointer
}

func New(cfg Config) (*Machine, error) {
	var v gvideo.Variant
	switch cfg.Variant {
	case "", "mono":
		v = gvideo.MonoVariant()
	case "color":
		v = gvideo.ColorVariant()
	default:
		return nil, fmt.Errorf("unknown variant %q", cfg.Variant)
	}

	m := &Machine{
		cfg: cfg,
		ram: NewRAM(),
	}

	var chargen, optChargen gvideo.CharGen
	var err error
	if len(cfg.CharGenROM) > 0 {
		if chargen, err = gvideo.ROMCharGen(cfg.CharGenROM); err != nil {
			return nil, fmt.Errorf("chargen: %w", err)
		}
	}
	if len(cfg.OptCharGenROM) > 0 {
		if optChargen, err = gvideo.ROMCharGen(cfg.OptCharGenROM); err != nil {
			return nil, fmt.Errorf("optional chargen: %w", err)
		}
	}

	logf := log.Printf
	if cfg.Quiet {
		logf = func(string, ...any) {}
	}

	// beam geometry gets reconfigured from the controller before each
	// frame; start from a placeholder matching the variant default
	m.beam = beam.New(beam.Raster{DotClockHz: 1, HTotal: 1, VTotal: 1})
	m.gv = gvideo.New(v, gvideo.Config{
		Beam:       m.beam,
		Memory:     m.ram,
		Pointer:    &m.pointer,
		CharGen:    chargen,
		OptCharGen: optChargen,
		Logf:       logf,
	})
	m.beam.Reconfigure(m.gv.Raster())
	return m, nil
}

// Controller exposes the display controller (register access, tests).
func (m *Machine) Controller() *gvideo.Controller { return m.gv }

// RAM exposes host memory for display list composition.
func (m *Machine) RAM() *RAM { return m.ram }

// SetPointer moves the light pen.
func (m *Machine) SetPointer(x, y int, pressed bool) {
	m.pointer = Pointer{X: x, Y: y, Pressed: pressed}
}

// ReadRegister and WriteRegister forward host register cycles to the
// controller, running any arbiter-deferred work first so the FSM sees
// accesses in timeline order.
func (m *Machine) ReadRegister(reg int) uint16 {
	m.serviceWake()
	return m.gv.ReadRegister(reg)
}

func (m *Machine) WriteRegister(reg int, data uint16) {
	m.serviceWake()
	m.gv.WriteRegister(reg, data)
}

func (m *Machine) serviceWake() {
	if at, ok := m.gv.PendingWake(); ok && m.beam.Now() >= at {
		m.gv.Resume()
	}
}

// StepFrame advances emulation by one full frame: per-scanline fetch
// and render work, vertical blank edges, and due FSM wake-ups, all on
// one timeline.
func (m *Machine) StepFrame() {
	// a raster switch latched by the fetcher takes effect here
	if r := m.gv.Raster(); r != m.beam.Raster() {
		m.beam.Reconfigure(r)
	}
	r := m.beam.Raster()

	for i := 0; i < r.VTotal; i++ {
		v := m.beam.VPos()
		switch v {
		case r.VBEnd:
			m.gv.VBlank(false)
		case r.VBStart:
			m.gv.VBlank(true)
		}
		m.serviceWake()
		m.gv.Scanline(v)
		m.beam.NextLine()
		m.serviceWake()
	}
}

// Framebuffer returns the RGBA frame rendered by the controller.
func (m *Machine) Framebuffer() []byte { return m.gv.Bitmap() }

// Size returns the framebuffer dimensions.
func (m *Machine) Size() (w, h int) { return gvideo.FrameWidth, gvideo.FrameHeight }

// Reset resets the controller; RAM contents survive.
func (m *Machine) Reset() {
	m.gv.Reset()
	m.beam.Reconfigure(m.gv.Raster())
}

// --- Save/Load state ---
type machineState struct {
	Variant    string
	Controller gvideo.Snapshot
	RAM        []uint16
	Frame      uint64
}

func (m *Machine) SaveState() []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(machineState{
		Variant:    m.gv.Variant().Name(),
		Controller: m.gv.Snapshot(),
		RAM:        m.ram.snapshot(),
		Frame:      m.beam.FrameNumber(),
	})
	return buf.Bytes()
}

func (m *Machine) LoadState(data []byte) error {
	var s machineState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return err
	}
	if s.Variant != m.gv.Variant().Name() {
		return fmt.Errorf("state is for variant %q, machine is %q", s.Variant, m.gv.Variant().Name())
	}
	if err := m.gv.Restore(s.Controller); err != nil {
		return err
	}
	m.ram.restore(s.RAM)
	m.beam.Reconfigure(m.gv.Raster())
	m.beam.SetFrameNumber(s.Frame)
	return nil
}

func (m *Machine) SaveStateToFile(path string) error {
	data := m.SaveState()
	if len(data) == 0 {
		return nil
	}
	return os.WriteFile(path, data, 0644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadState(data)
}
