package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/righthere/vrmame/internal/machine"
	"github.com/righthere/vrmame/internal/ui"
)

type CLIFlags struct {
	Variant    string
	CharGen    string
	OptCharGen string
	Scale      int
	Title      string
	Demo       string

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.Variant, "variant", "color", "controller variant: mono or color")
	flag.StringVar(&f.CharGen, "chargen", "", "optional character generator ROM dump")
	flag.StringVar(&f.OptCharGen, "optchargen", "", "optional alternate-font generator ROM dump")
	flag.IntVar(&f.Scale, "scale", 1, "window scale")
	flag.StringVar(&f.Title, "title", "hp45", "window title")
	flag.StringVar(&f.Demo, "demo", "text", "demo scene: text, graphics or none")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 60, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *machine.Machine, frames int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.StepFrame()
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	w, h := m.Size()
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		frames, dur.Truncate(time.Millisecond), fps, crc)

	if pngPath != "" {
		if err := saveFramePNG(fb, w, h, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func mustRead(path string) []byte {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return b
}

// gvCommand loads a command into R5 and feeds it data words, pulling
// the trigger after each one so odd commands advance too.
func gvCommand(m *machine.Machine, cmd uint16, words ...uint16) {
	m.WriteRegister(1, 1<<8|cmd&0xf)
	for _, w := range words {
		m.WriteRegister(0, w)
		m.WriteRegister(3, 0)
	}
}

// moveTo / lineTo issue endpoint pairs; bit 10 of the X word selects
// draw over move.
func moveTo(m *machine.Machine, x, y uint16) {
	gvCommand(m, 0xd, ^y&0x1ff, ^x&0x3ff)
}

func lineTo(m *machine.Machine, x, y uint16) {
	gvCommand(m, 0xd, ^y&0x1ff, ^x&0x3ff|1<<10)
}

func demoText() []string {
	lines := []string{
		"READY",
		"",
		"10  PLOTTER IS 13,\"GRAPHICS\"",
		"20  GRAPHICS",
		"30  FOR I=0 TO 360 STEP 5",
		"40  DRAW 280+200*COS(I),227+200*SIN(I)",
		"50  NEXT I",
		"60  END",
		"",
		"RUN",
	}
	for len(lines) < 25 {
		lines = append(lines, "")
	}
	return lines
}

// setupDemo fills the display list and, on the color variant, drives
// the vector generator through the register protocol.
func setupDemo(m *machine.Machine, f CLIFlags) {
	switch f.Demo {
	case "none":
		return

	case "text":
		if f.Variant == "mono" {
			m.LoadAlphaList(machine.ComposeMonoText(demoText(), 0, false))
		} else {
			// attribute high nibble is the foreground color (green)
			m.LoadAlphaList(machine.ComposeColorText(demoText(), 0x20, false, true))
		}

	case "graphics":
		if f.Variant == "mono" {
			m.LoadAlphaList(machine.ComposeMonoText(nil, 0, true))
			// stripe pattern through the write-words command
			gvCommand(m, 0x8, ^uint16(0)) // load address 0
			for row := 0; row < 455; row++ {
				w := uint16(0xff00)
				if row%2 == 1 {
					w = 0x00ff
				}
				for col := 0; col < 35; col++ {
					m.WriteRegister(0, w)
				}
				m.WriteRegister(0, 0)
			}
			return
		}

		m.LoadAlphaList(machine.ComposeColorText(demoText(), 0x70, true, true))
		gvCommand(m, 0xa, 0x3f)    // all planes enabled and drawable
		gvCommand(m, 0xb, 1<<4|0)  // solid vectors
		moveTo(m, 40, 40)
		lineTo(m, 519, 40)
		lineTo(m, 519, 414)
		lineTo(m, 40, 414)
		lineTo(m, 40, 40)
		lineTo(m, 519, 414)

		// halftone panel on plane 2 only
		gvCommand(m, 0xa, 0x12)
		gvCommand(m, 0xb, 8) // medium halftone
		moveTo(m, 80, 80)
		lineTo(m, 240, 200)

		// crosshair cursor
		gvCommand(m, 0xf, (300+42)<<6|1<<1)
		gvCommand(m, 0xe, (1073-260)<<6|^uint16(3)&7)

	default:
		log.Fatalf("unknown demo %q", f.Demo)
	}
}

func main() {
	f := parseFlags()

	cfg := machine.Config{
		Variant:       f.Variant,
		CharGenROM:    mustRead(f.CharGen),
		OptCharGenROM: mustRead(f.OptCharGen),
	}
	m, err := machine.New(cfg)
	if err != nil {
		log.Fatalf("machine: %v", err)
	}

	setupDemo(m, f)

	if f.Headless {
		if err := runHeadless(m, f.Frames, f.PNGOut, f.Expect); err != nil {
			log.Fatal(err)
		}
		return
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale}
	app := ui.NewApp(uiCfg, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
