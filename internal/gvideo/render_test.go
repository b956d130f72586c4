package gvideo

import "testing"

// fixedFont returns the same glyph row for every code and line.
type fixedFont byte

func (f fixedFont) Row(code byte, line int) byte { return byte(f) }

func pixAt(c *Controller, x, y int) (r, g, b byte) {
	i := (y*FrameWidth + x) * 4
	return c.bitmap[i], c.bitmap[i+1], c.bitmap[i+2]
}

func TestCellPixelsAttributes(t *testing.T) {
	b := &testBeam{}
	c := New(MonoVariant(), Config{Beam: b, CharGen: fixedFont(0x2a)})

	// plain glyph: ROM row shifted into the 9 pixel cell
	if got := c.cellPixels('A', 0, 5, false); got != 0x2a<<1 {
		t.Errorf("plain = %04x, want %04x", got, 0x2a<<1)
	}
	// inverse video
	if got := c.cellPixels('A', 1<<1, 5, false); got != ^uint16(0x2a<<1) {
		t.Errorf("inverse = %04x, want %04x", got, ^uint16(0x2a<<1))
	}
	// underline row
	if got := c.cellPixels('A', 1<<3, 14, false); got != 0xffff {
		t.Errorf("underline = %04x, want ffff", got)
	}
	// cursor row is solid only on the blink-on phase
	if got := c.cellPixels('A', 1<<0, 12, false); got != 0x2a<<1 {
		t.Errorf("cursor off-phase = %04x, want glyph", got)
	}
	b.frame = 1 << 3
	if got := c.cellPixels('A', 1<<0, 12, false); got != 0xffff {
		t.Errorf("cursor on-phase = %04x, want ffff", got)
	}
	// blinking character disappears on the blink phase
	b.frame = 1 << 4
	if got := c.cellPixels('A', 1<<2, 5, false); got != 0 {
		t.Errorf("char blink = %04x, want 0", got)
	}
}

func TestRenderAlphaMonoScanline(t *testing.T) {
	c, _ := newTestController(MonoVariant(), nil, nil)
	c.chargen = fixedFont(0x7f)

	buff := c.buff(false)
	for i := range buff.chars {
		buff.chars[i] = 'A'
	}
	buff.full = true

	c.renderAlphaMono(5, 5, false)

	// glyph bits land at cell offsets 1..7; 0 and 8 stay dark
	if _, g, _ := pixAt(c, 0, 5); g != 0 {
		t.Errorf("pixel (0,5) green = %02x, want 0", g)
	}
	if r, g, b := pixAt(c, 1, 5); r != 0 || g != intAlpha || b != 0 {
		t.Errorf("pixel (1,5) = %02x/%02x/%02x, want green text", r, g, b)
	}
	if _, g, _ := pixAt(c, 8, 5); g != 0 {
		t.Errorf("pixel (8,5) green = %02x, want 0", g)
	}
	// second cell
	if _, g, _ := pixAt(c, 10, 5); g != intAlpha {
		t.Errorf("pixel (10,5) green = %02x, want %02x", g, intAlpha)
	}
}

func TestRenderGraphicsMonoPixelsAndCursor(t *testing.T) {
	c, b := newTestController(MonoVariant(), nil, nil)
	c.graphicSel = true

	// plane bit at x=3 of the first visible line
	c.planes[0].SetBits(0, pixelMask(3))
	c.renderGraphicsMono(gvVBEnd)
	if _, g, _ := pixAt(c, 3, 0); g != intGraphic {
		t.Errorf("pixel (3,0) green = %02x, want %02x", g, intGraphic)
	}
	if _, g, _ := pixAt(c, 4, 0); g != 0 {
		t.Errorf("pixel (4,0) green = %02x, want 0", g)
	}

	// full-screen cursor: the horizontal bar covers the whole line
	c.cursorFS = true
	c.cursorGC = true
	c.cursorY = 100
	c.cursorX = 169
	b.frame = 0 // full-screen cursor does not blink

	yc := int(c.cursorY) + 6 - gvVCntOff // scanline of the horizontal bar
	c.renderGraphicsMono(yc)
	if _, g, _ := pixAt(c, 0, yc-gvVBEnd); g != intCursor {
		t.Errorf("cursor bar green = %02x, want %02x", g, intCursor)
	}

	// vertical bar at cursorX on other lines
	c.renderGraphicsMono(50)
	xc := int(c.cursorX) + 6 - gvHBEnd - gvHCntOff
	if _, g, _ := pixAt(c, xc, 50-gvVBEnd); g != intCursor {
		t.Errorf("cursor column green = %02x, want %02x", g, intCursor)
	}
	if _, g, _ := pixAt(c, xc+1, 50-gvVBEnd); g == intCursor {
		t.Error("cursor column wider than one pixel")
	}
}

func TestRenderGraphicsColorPens(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)
	c.graphicSel = true

	// default music memory maps the planes to red, green, blue
	c.planes[0].SetBits(memAddr(0, 0, colorWordsPerRow), pixelMask(0))
	c.planes[1].SetBits(memAddr(1, 0, colorWordsPerRow), pixelMask(16))
	c.planes[2].SetBits(memAddr(2, 0, colorWordsPerRow), pixelMask(32))

	c.renderGraphicsColor(0)

	if r, g, b := pixAt(c, video770AlphaLLim+0, 0); r != intGraphic || g != 0 || b != 0 {
		t.Errorf("plane 0 pixel = %02x/%02x/%02x, want red", r, g, b)
	}
	if r, g, b := pixAt(c, video770AlphaLLim+16, 0); r != 0 || g != intGraphic || b != 0 {
		t.Errorf("plane 1 pixel = %02x/%02x/%02x, want green", r, g, b)
	}
	if r, g, b := pixAt(c, video770AlphaLLim+32, 0); r != 0 || g != 0 || b != intGraphic {
		t.Errorf("plane 2 pixel = %02x/%02x/%02x, want blue", r, g, b)
	}
	if r, g, b := pixAt(c, video770AlphaLLim+1, 0); r|g|b != 0 {
		t.Errorf("empty pixel = %02x/%02x/%02x, want black", r, g, b)
	}
}

func TestRenderGraphicsColorMusicMemoryRemap(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)
	c.graphicSel = true

	// map plane 0 to white
	c.musicMemory = 0x49
	c.planes[0].SetBits(memAddr(0, 0, colorWordsPerRow), pixelMask(0))

	c.renderGraphicsColor(0)
	if r, g, b := pixAt(c, video770AlphaLLim, 0); r != intGraphic || g != intGraphic || b != intGraphic {
		t.Errorf("pixel = %02x/%02x/%02x, want white", r, g, b)
	}
}

func TestRenderAlphaColorOverlay(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)
	c.graphicSel = true
	c.alphaSel = true

	// graphics pixel inside the shared zone, under an alpha space
	c.planes[0].SetBits(memAddr(0, 2, colorWordsPerRow), pixelMask(5))
	c.renderGraphicsColor(2)

	buff := c.buff(false)
	for i := range buff.chars {
		buff.chars[i] = 0x20
	}
	buff.chars[10] = 'X'
	buff.attrs[10] = 0x70 // white foreground
	buff.full = true

	c.renderAlphaColor(2, 2, false)

	// space cells in the shared zone leave graphics pixels alone
	if r, _, _ := pixAt(c, video770AlphaLLim+5, 2); r != intGraphic {
		t.Errorf("graphics pixel overwritten by alpha space: r=%02x", r)
	}
	// the glyph itself overlays in white (builtin font: line 2 is solid)
	if r, g, b := pixAt(c, 10*videoCharWidth+1, 2); r != intAlpha || g != intAlpha || b != intAlpha {
		t.Errorf("glyph pixel = %02x/%02x/%02x, want white", r, g, b)
	}
	// side zones are always text-owned and painted black
	if r, g, b := pixAt(c, 0, 2); r|g|b != 0 {
		t.Errorf("side zone pixel = %02x/%02x/%02x, want black", r, g, b)
	}
}

func TestRenderAlphaColorBlankedKeepsGraphics(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)
	c.graphicSel = true
	c.alphaSel = false

	c.planes[0].SetBits(memAddr(0, 0, colorWordsPerRow), pixelMask(5))
	c.renderGraphicsColor(0)
	c.renderAlphaColor(0, 0, false)

	if r, _, _ := pixAt(c, video770AlphaLLim+5, 0); r != intGraphic {
		t.Errorf("graphics pixel lost with alpha disabled: r=%02x", r)
	}
	if r, g, b := pixAt(c, 0, 0); r|g|b != 0 {
		t.Errorf("side zone = %02x/%02x/%02x, want black", r, g, b)
	}
}

func TestRenderGraphicsColorCursor(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)
	c.graphicSel = true
	c.cursorGC = true
	c.cursorColor = 3 // yellow
	c.cursorX = 200
	c.cursorY = 150

	// horizontal bar scanlines sit just above and below the center
	scan := int(c.cursorY) - 50 + 3
	c.renderGraphicsColor(scan)

	hit := false
	for x := video770AlphaLLim; x < FrameWidth; x++ {
		if r, g, b := pixAt(c, x, scan); r == intCursor && g == intCursor && b == 0 {
			hit = true
			break
		}
	}
	if !hit {
		t.Fatal("no cursor pixels drawn on the bar scanline")
	}
}
