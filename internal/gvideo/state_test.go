package gvideo

import "testing"

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c1, _ := newTestController(ColorVariant(), nil, nil)

	colorCmd(c1, cmdLoadX)
	c1.WriteRegister(RegData, ^uint16(5))
	colorCmd(c1, cmdLoadY)
	strobe(c1, ^uint16(9))
	colorCmd(c1, cmdMemControl)
	c1.WriteRegister(RegData, 0x3f)
	colorCmd(c1, cmdWriteWords)
	c1.WriteRegister(RegData, 0xcafe)

	snap := c1.Snapshot()

	c2, _ := newTestController(ColorVariant(), nil, nil)
	if err := c2.Restore(snap); err != nil {
		t.Fatal(err)
	}

	if c2.State() != c1.State() {
		t.Errorf("state = %v, want %v", c2.State(), c1.State())
	}
	if c2.wordX != 5 || c2.wordY != 9 {
		t.Errorf("word pointer = (%d,%d), want (5,9)", c2.wordX, c2.wordY)
	}
	if c2.memControl != 0x3f {
		t.Errorf("memControl = %02x, want 3f", c2.memControl)
	}
	addr := memAddr(5, 9, colorWordsPerRow)
	if got := c2.planes[0].Read(addr); got != 0xcafe {
		t.Errorf("plane word = %04x, want cafe", got)
	}
	if c2.plane != c1.plane || c2.ioCursor != c1.ioCursor {
		t.Errorf("I/O counter = %d/%d, want %d/%d", c2.plane, c2.ioCursor, c1.plane, c1.ioCursor)
	}

	// the restored controller continues the stream where c1 left off
	c2.WriteRegister(RegData, 0xbabe)
	if got := c2.planes[1].Read(addr); got != 0xbabe {
		t.Errorf("next stream word = %04x, want babe", got)
	}
}

func TestRestoreRejectsWrongPlaneCount(t *testing.T) {
	mono, _ := newTestController(MonoVariant(), nil, nil)
	color, _ := newTestController(ColorVariant(), nil, nil)

	if err := color.Restore(mono.Snapshot()); err == nil {
		t.Fatal("restoring a single-plane snapshot into a color controller should fail")
	}
	if err := mono.Restore(color.Snapshot()); err == nil {
		t.Fatal("restoring a three-plane snapshot into a mono controller should fail")
	}
}

func TestRestoreRecomputesSignals(t *testing.T) {
	c1, _ := newTestController(ColorVariant(), nil, nil)
	c1.WriteRegister(RegStatus, 1<<8|1<<7)
	snap := c1.Snapshot()

	c2, _ := newTestController(ColorVariant(), nil, nil)
	if c2.Signals().IRQ {
		t.Fatal("fresh controller should not interrupt")
	}
	if err := c2.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if !c2.Signals().IRQ {
		t.Fatal("restored controller lost its interrupt level")
	}
}
