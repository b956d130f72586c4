package beam

import (
	"testing"
	"time"
)

func testRaster() Raster {
	return Raster{DotClockHz: 1000, HTotal: 10, VTotal: 4, VBEnd: 0, VBStart: 3}
}

func TestNextLineWraps(t *testing.T) {
	b := New(testRaster())
	for i := 0; i < 4; i++ {
		b.NextLine()
	}
	if b.VPos() != 0 {
		t.Fatalf("vpos=%d, want 0", b.VPos())
	}
	if b.FrameNumber() != 1 {
		t.Fatalf("frame=%d, want 1", b.FrameNumber())
	}
}

func TestNow(t *testing.T) {
	b := New(testRaster())
	b.SetPos(1, 5)
	// 15 dots at 1 kHz
	if got, want := b.Now(), 15*time.Millisecond; got != want {
		t.Fatalf("Now()=%v, want %v", got, want)
	}
}

func TestTimeUntilPosForward(t *testing.T) {
	b := New(testRaster())
	b.SetPos(1, 5)
	if got, want := b.TimeUntilPos(2, 0), 5*time.Millisecond; got != want {
		t.Fatalf("TimeUntilPos=%v, want %v", got, want)
	}
}

func TestTimeUntilPosWrapsToNextFrame(t *testing.T) {
	b := New(testRaster())
	b.SetPos(2, 0)
	// target at or before the beam resolves to the next frame
	if got, want := b.TimeUntilPos(1, 0), 30*time.Millisecond; got != want {
		t.Fatalf("TimeUntilPos=%v, want %v", got, want)
	}
	if got, want := b.TimeUntilPos(2, 0), 40*time.Millisecond; got != want {
		t.Fatalf("TimeUntilPos(self)=%v, want %v", got, want)
	}
}

func TestSetPosRejectsOutOfRange(t *testing.T) {
	b := New(testRaster())
	b.SetPos(99, 99)
	if b.VPos() != 0 || b.HPos() != 0 {
		t.Fatalf("pos=(%d,%d), want (0,0)", b.VPos(), b.HPos())
	}
}

func TestReconfigureRestartsFrame(t *testing.T) {
	b := New(testRaster())
	b.SetPos(2, 3)
	b.Reconfigure(Raster{DotClockHz: 2000, HTotal: 20, VTotal: 8, VBEnd: 0, VBStart: 7})
	if b.VPos() != 0 || b.HPos() != 0 {
		t.Fatalf("pos=(%d,%d) after reconfigure, want (0,0)", b.VPos(), b.HPos())
	}
	if b.Raster().HTotal != 20 {
		t.Fatalf("raster not applied")
	}
}
