package machine

import "github.com/righthere/vrmame/internal/gvideo"

// Display list composers. Both produce the word stream the alpha
// fetcher walks, starting with the frame-lead word that the fetcher
// consumes as the first new-word-address of every frame.

// monoLead builds the first word of the monochrome list: the fetcher
// complements it into the row start address and takes bit 15 as the
// inverted graphics select.
func monoLead(target uint16, graphic bool) uint16 {
	w := ^target
	if graphic {
		w &^= 1 << 15
	} else {
		w |= 1 << 15
	}
	return w
}

// ComposeMonoText packs text lines into the byte stream format:
// 10xxxxxx attribute latch, 11xxxxx1 end of line, plain bytes are
// characters. The stream starts at offset 1; word 0 is the frame lead.
func ComposeMonoText(lines []string, attr byte, graphic bool) []uint16 {
	var bytes []byte
	for _, line := range lines {
		bytes = append(bytes, 0x80|attr&0x1f)
		for i := 0; i < len(line) && i < 80; i++ {
			ch := line[i]
			if ch < 0x20 || ch >= 0x80 {
				ch = 0x20
			}
			bytes = append(bytes, ch)
		}
		bytes = append(bytes, 0xc1) // EOL
	}
	if len(bytes)%2 != 0 {
		bytes = append(bytes, 0xc1)
	}

	words := []uint16{monoLead(1, graphic)}
	for i := 0; i < len(bytes); i += 2 {
		words = append(words, uint16(bytes[i])<<8|uint16(bytes[i+1]))
	}
	return words
}

// colorLead builds the first word of the color list: bit 15 enables the
// graphics layer, bit 14 the text layer, the complement of the low bits
// is the row start address.
func colorLead(target uint16, graphic, alpha bool) uint16 {
	w := ^target & 0x1fff
	if graphic {
		w |= 1 << 15
	}
	if alpha {
		w |= 1 << 14
	}
	return w
}

// ComposeColorText packs text lines into the word-per-cell format:
// high byte attribute, low byte character, 0x8020 ends a line. The
// attribute's bits 4-6 select the foreground color.
func ComposeColorText(lines []string, attr byte, graphic, alpha bool) []uint16 {
	words := []uint16{colorLead(1, graphic, alpha)}
	for _, line := range lines {
		for i := 0; i < len(line) && i < 80; i++ {
			ch := line[i]
			if ch < 0x20 || ch >= 0x80 {
				ch = 0x20
			}
			words = append(words, uint16(attr&0x7f)<<8|uint16(ch))
		}
		words = append(words, 0x8020) // EOL
	}
	return words
}

// LoadAlphaList places a composed display list at the variant's buffer
// base.
func (m *Machine) LoadAlphaList(words []uint16) {
	base := uint32(gvideo.AlphaListBaseMono)
	if m.gv.Variant().Name() == "color" {
		base = gvideo.AlphaListBaseColor
	}
	m.ram.WriteWords(base, words)
}
