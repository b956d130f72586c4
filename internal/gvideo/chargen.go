package gvideo

import "fmt"

// romCharGen serves glyph rows from a character generator ROM dump.
// The row address is the complemented character code in the high bits
// and the scanline in the low nibble, the way the hardware wires the
// ROM.
type romCharGen struct {
	rom  []byte
	mask int
}

// ROMCharGen wraps a ROM image. The image must be a power of two of at
// least 2 KiB so row addresses can be masked instead of bounds-checked.
func ROMCharGen(data []byte) (CharGen, error) {
	n := len(data)
	if n < 2048 || n&(n-1) != 0 {
		return nil, fmt.Errorf("bad chargen size %d: want a power of two >= 2048", n)
	}
	return &romCharGen{rom: data, mask: n - 1}, nil
}

func (cg *romCharGen) Row(code byte, line int) byte {
	addr := int(code^0x7f)<<4 | line&0xf
	return cg.rom[addr&cg.mask]
}

// builtinCharGen is the fallback glyph set used when no ROM is loaded:
// a deterministic, distinct 7-pixel pattern per character code, so text
// layout, attributes and blanking stay observable.
type builtinCharGen struct{}

// DefaultCharGen returns the built-in glyph set.
func DefaultCharGen() CharGen { return builtinCharGen{} }

func (builtinCharGen) Row(code byte, line int) byte {
	line &= 0xf
	if code == 0x20 || line < 2 || line > 11 {
		return 0
	}
	if line == 2 || line == 11 {
		return 0x7f
	}
	v := uint32(code)*2654435761 + uint32(line)*40503
	return byte(v>>8)&0x3e | 0x41
}
