package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/righthere/vrmame/internal/machine"
)

type App struct {
	cfg    Config
	m      *machine.Machine
	tex    *ebiten.Image
	paused bool
	fast   bool
}

func NewApp(cfg Config, m *machine.Machine) *App {
	cfg.Defaults()
	w, h := m.Size()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	return &App{cfg: cfg, m: m}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	// Mouse drives the light pen
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	a.m.SetPointer(mx/a.cfg.Scale, my/a.cfg.Scale, pressed)

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	// Reset (R)
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
	}

	// Frame-step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.StepFrame()
	}

	// Save/load state (F5/F9)
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		_ = a.m.SaveStateToFile("slot0.savestate")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		_ = a.m.LoadStateFromFile("slot0.savestate")
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}

	if !a.paused {
		if a.fast {
			for i := 0; i < 5; i++ {
				a.m.StepFrame()
			}
		} else {
			a.m.StepFrame()
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := a.m.Size()
	if a.tex == nil {
		a.tex = ebiten.NewImage(w, h)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.m.Size()
}

func (a *App) saveScreenshot() error {
	w, h := a.m.Size()
	img := &image.RGBA{
		Pix:    append([]byte(nil), a.m.Framebuffer()...),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	name := fmt.Sprintf("screenshot-%d.png", time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
