package gvideo

// Plane is one 16K x 16-bit bitplane. Every address is masked, never
// rejected; out-of-range coordinates silently wrap like the hardware
// address counter does.
type Plane []uint16

func NewPlane(words int) Plane {
	return make(Plane, words)
}

func (p Plane) Read(addr uint16) uint16 {
	return p[addr&gvAddrMask]
}

func (p Plane) Write(addr uint16, v uint16) {
	p[addr&gvAddrMask] = v
}

// SetBits ORs mask into the word at addr.
func (p Plane) SetBits(addr uint16, mask uint16) {
	p[addr&gvAddrMask] |= mask
}

// ClearBits clears mask from the word at addr.
func (p Plane) ClearBits(addr uint16, mask uint16) {
	p[addr&gvAddrMask] &^= mask
}

// pixelMask selects the pixel within a word; bit 15 is the leftmost
// pixel.
func pixelMask(x uint16) uint16 {
	return 0x8000 >> (x & 0xf)
}

// memAddr maps a word-column/row pair onto the plane address space.
// Both variants use a row stride fixed by their word-per-row count.
func memAddr(x, y uint16, stride uint16) uint16 {
	return (x + y*stride) & gvAddrMask
}
