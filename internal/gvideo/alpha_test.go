package gvideo

import "testing"

// monoList writes a byte-packed display list into mem. The lead word at
// the buffer base points at word offset 1 with the graphics select in
// bit 15 (clear = graphics raster).
func monoList(mem mockMem, graphic bool, bytes []byte) {
	lead := ^uint16(1)
	if graphic {
		lead &^= 1 << 15
	}
	mem[AlphaListBaseMono] = lead
	if len(bytes)%2 != 0 {
		bytes = append(bytes, 0xc1)
	}
	for i := 0; i < len(bytes); i += 2 {
		mem[AlphaListBaseMono+1+uint32(i/2)] = uint16(bytes[i])<<8 | uint16(bytes[i+1])
	}
}

func TestMonoRowFetch(t *testing.T) {
	mem := mockMem{}
	monoList(mem, false, []byte{0x80 | 0x02, 'H', 'I', 0xc1})
	c, _ := newTestController(MonoVariant(), mem, nil)

	c.VBlank(true)

	buff := c.buff(false)
	if !buff.full {
		t.Fatal("row buffer not full")
	}
	if buff.chars[0] != 'H' || buff.chars[1] != 'I' {
		t.Fatalf("chars = %q %q, want H I", buff.chars[0], buff.chars[1])
	}
	if buff.attrs[0] != 0x02 {
		t.Fatalf("attr = %02x, want 02", buff.attrs[0])
	}
	// end of line pads with spaces under the current attribute
	if buff.chars[79] != 0x20 || buff.attrs[79] != 0x02 {
		t.Fatalf("pad = %02x/%02x, want 20/02", buff.chars[79], buff.attrs[79])
	}
	if c.graphicSel {
		t.Fatal("alpha lead word selected graphics")
	}
}

func TestMonoAttributePersistsAcrossRows(t *testing.T) {
	mem := mockMem{}
	monoList(mem, false, []byte{0x80 | 0x08, 'A', 0xc1, 'B', 0xc1})
	c, _ := newTestController(MonoVariant(), mem, nil)

	c.VBlank(true) // fetches row 0
	c.Scanline(0)  // start of row 0 on screen, fetches row 1

	row1 := c.buff(true)
	if row1.chars[0] != 'B' {
		t.Fatalf("row 1 char = %q, want B", row1.chars[0])
	}
	if row1.attrs[0] != 0x08 {
		t.Fatalf("attribute latch lost across rows: %02x", row1.attrs[0])
	}
}

func TestMonoNewWordAddress(t *testing.T) {
	mem := mockMem{}
	monoList(mem, false, []byte{0x80, 0xc0}) // NWA escape
	mem[AlphaListBaseMono+2] = ^uint16(0x100)
	mem[AlphaListBaseMono+0x100] = uint16('Z')<<8 | 0xc1
	c, _ := newTestController(MonoVariant(), mem, nil)

	c.VBlank(true)

	buff := c.buff(false)
	if buff.chars[0] != 'Z' {
		t.Fatalf("char after NWA = %q, want Z", buff.chars[0])
	}
	if !buff.full {
		t.Fatal("row not terminated after NWA jump")
	}
}

func TestMonoFetchBudgetBlanksFrame(t *testing.T) {
	mem := mockMem{}
	monoList(mem, false, nil)
	// a stream of attribute escapes never fills the row
	for i := uint32(0); i < 300; i++ {
		mem[AlphaListBaseMono+1+i] = 0x8080
	}
	c, _ := newTestController(MonoVariant(), mem, nil)

	c.VBlank(true)
	if c.buff(false).full {
		t.Fatal("row marked full with no terminator")
	}

	c.Scanline(0)
	if !c.blanked {
		t.Fatal("underrun did not blank the frame")
	}
	if r, g, b := pixAt(c, 0, 0); r != 0 || g != 0 || b != 0 {
		t.Fatalf("pixel (0,0) = %d/%d/%d, want black", r, g, b)
	}
}

func TestMonoGraphicModeLatch(t *testing.T) {
	mem := mockMem{}
	monoList(mem, true, nil)
	c, _ := newTestController(MonoVariant(), mem, nil)

	if c.Raster().HTotal != videoHTotal {
		t.Fatalf("HTotal = %d before latch, want %d", c.Raster().HTotal, videoHTotal)
	}
	c.VBlank(true)
	if !c.GraphicEnabled() {
		t.Fatal("graphics select not latched from the lead word")
	}
	if c.Raster().HTotal != gvHTotal {
		t.Fatalf("HTotal = %d, want %d", c.Raster().HTotal, gvHTotal)
	}

	// and back
	monoList(mem, false, nil)
	c.VBlank(true)
	if c.GraphicEnabled() {
		t.Fatal("graphics select not released")
	}
}

func TestMonoBufferSwapsOncePerRow(t *testing.T) {
	mem := mockMem{}
	monoList(mem, false, nil)
	c, _ := newTestController(MonoVariant(), mem, nil)

	c.VBlank(true)
	prev := c.buffIdx
	flips := 0
	for scan := 0; scan < videoActiveScanlines; scan++ {
		c.Scanline(scan)
		if c.buffIdx != prev {
			if scan%videoCharHeight != 0 {
				t.Fatalf("buffer swapped mid-row at scanline %d", scan)
			}
			flips++
			prev = c.buffIdx
		}
	}
	if want := videoActiveScanlines / videoCharHeight; flips != want {
		t.Fatalf("buffer swaps = %d, want %d", flips, want)
	}
}

func TestColorBufferSwapsOncePerRow(t *testing.T) {
	c, _ := newTestController(ColorVariant(), nil, nil)

	c.VBlank(true)
	prev := c.buffIdx
	flips := 0
	for scan := 0; scan < gvVPixels; scan++ {
		c.Scanline(scan)
		if c.buffIdx != prev {
			if scan%videoCharHeight != 0 {
				t.Fatalf("buffer swapped mid-row at scanline %d", scan)
			}
			flips++
			prev = c.buffIdx
		}
	}
	if want := (gvVPixels + videoCharHeight - 1) / videoCharHeight; flips != want {
		t.Fatalf("buffer swaps = %d, want %d", flips, want)
	}
}

func TestColorRowFetch(t *testing.T) {
	mem := mockMem{
		AlphaListBaseColor:     ^uint16(1)&0x1fff | 1<<15 | 1<<14,
		AlphaListBaseColor + 1: 0x20<<8 | uint16('A'),
		AlphaListBaseColor + 2: 0x8020, // EOL
	}
	c, _ := newTestController(ColorVariant(), mem, nil)

	c.VBlank(true)

	buff := c.buff(false)
	if !buff.full {
		t.Fatal("row buffer not full")
	}
	if buff.chars[0] != 'A' || buff.attrs[0] != 0x20 {
		t.Fatalf("cell = %02x/%02x, want 41/20", buff.chars[0], buff.attrs[0])
	}
	if buff.chars[1] != 0x20 || buff.attrs[1] != 0 {
		t.Fatalf("pad = %02x/%02x, want 20/00", buff.chars[1], buff.attrs[1])
	}
	if !c.graphicSel || !c.alphaSel {
		t.Fatalf("layer enables = %v/%v, want both", c.graphicSel, c.alphaSel)
	}
}

func TestColorFetchSkipsNOPs(t *testing.T) {
	mem := mockMem{
		AlphaListBaseColor:     ^uint16(1)&0x1fff | 1<<14,
		AlphaListBaseColor + 1: 0xc000, // NOP
		AlphaListBaseColor + 2: uint16('B'),
		AlphaListBaseColor + 3: 0x8020,
	}
	c, _ := newTestController(ColorVariant(), mem, nil)

	c.VBlank(true)
	if got := c.buff(false).chars[0]; got != 'B' {
		t.Fatalf("char = %02x, want 42", got)
	}
}

func TestColorFetchFollowsNWA(t *testing.T) {
	mem := mockMem{
		AlphaListBaseColor:         ^uint16(1)&0x1fff | 1<<14,
		AlphaListBaseColor + 1:     0x8000, // NWA marker
		AlphaListBaseColor + 2:     ^uint16(0x220) & 0x1fff,
		AlphaListBaseColor + 0x220: uint16('C'),
		AlphaListBaseColor + 0x221: 0x8020,
	}
	c, _ := newTestController(ColorVariant(), mem, nil)

	c.VBlank(true)
	if got := c.buff(false).chars[0]; got != 'C' {
		t.Fatalf("char after NWA = %02x, want 43", got)
	}
}

func TestColorFetchStopsAtBufferEnd(t *testing.T) {
	mem := mockMem{
		AlphaListBaseColor: ^uint16(0x1df0)&0x1fff | 1<<14,
	}
	for i := uint32(0); i < 0x40; i++ {
		mem[AlphaListBaseColor+0x1df0+i] = uint16('X')
	}
	c, _ := newTestController(ColorVariant(), mem, nil)

	c.VBlank(true)

	buff := c.buff(false)
	if buff.full {
		t.Fatal("fetch ran past the CRT buffer window")
	}
	if buff.chars[15] != 'X' {
		t.Fatalf("char 15 = %02x, want 58", buff.chars[15])
	}
}
