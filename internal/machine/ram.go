package machine

// RAMWords covers the address space the display controller can reach:
// both display list windows end at word address 0x17fff.
const RAMWords = 0x18000

// RAM is word-addressed host memory. Reads outside the populated range
// float to zero, writes there are dropped.
type RAM struct {
	words []uint16
}

func NewRAM() *RAM {
	return &RAM{words: make([]uint16, RAMWords)}
}

func (r *RAM) ReadWord(addr uint32) uint16 {
	if addr >= uint32(len(r.words)) {
		return 0
	}
	return r.words[addr]
}

func (r *RAM) WriteWord(addr uint32, v uint16) {
	if addr >= uint32(len(r.words)) {
		return
	}
	r.words[addr] = v
}

// WriteWords copies a block starting at addr.
func (r *RAM) WriteWords(addr uint32, words []uint16) {
	for i, w := range words {
		r.WriteWord(addr+uint32(i), w)
	}
}

func (r *RAM) snapshot() []uint16 {
	return append([]uint16(nil), r.words...)
}

func (r *RAM) restore(words []uint16) {
	copy(r.words, words)
}
