package gvideo

import (
	"fmt"
	"time"
)

// RowSnapshot mirrors one side of the text row double buffer.
type RowSnapshot struct {
	Chars [videoCharColumns]byte
	Attrs [videoCharColumns]byte
	Full  bool
}

// LightPenSnapshot mirrors the light pen state.
type LightPenSnapshot struct {
	Enabled    bool
	IntEn      bool
	Status     bool
	RegCnt     uint8
	Selftest   bool
	XWindow    bool
	YWindow    bool
	Interlace  bool
	VBlank     bool
	FirstHit   bool
	VBInt      bool
	Fullbright bool
	Threshold  bool
	X, Y       uint16
	Switch     bool
	CursorX    uint16
	CursorY    uint16
	CursorFS   bool
	Data       [3]uint16
}

// Snapshot is the complete serializable controller state, used by the
// machine layer for save states (encoded with encoding/gob).
type Snapshot struct {
	FSM     uint8
	Cmd     uint8
	LastCmd uint8

	DMAEn    bool
	IntEn    bool
	GrEn     bool
	SkEn     bool
	OptEn    bool
	DsaEn    bool
	SkStatus bool

	DataW uint16
	DataR uint16

	IOCursor  uint16
	Plane     int
	PlaneWrap bool
	WordX     uint16
	WordY     uint16

	MemControl       uint16
	LineTypeAreaFill uint16
	LineTypeMask     uint16
	RepeatCount      uint8
	MusicMemory      uint16
	Xpt, Ypt         uint16
	LastXpt, LastYpt uint16

	CursorX     uint16
	CursorY     uint16
	CursorFS    bool
	CursorGC    bool
	CursorColor uint8

	MAR        uint32
	VideoWord  uint16
	LoadMAR    bool
	FirstMAR   bool
	ByteIdx    bool
	VideoAttr  byte
	Blanked    bool
	GraphicSel bool
	AlphaSel   bool
	BuffIdx    bool
	Rows       [2]RowSnapshot

	LightPen LightPenSnapshot

	WakeAt      time.Duration
	WakePending bool

	Planes [][]uint16
}

// Snapshot captures the full controller state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		FSM:     uint8(c.fsm),
		Cmd:     c.cmd,
		LastCmd: c.lastCmd,

		DMAEn:    c.dmaEn,
		IntEn:    c.intEn,
		GrEn:     c.grEn,
		SkEn:     c.skEn,
		OptEn:    c.optEn,
		DsaEn:    c.dsaEn,
		SkStatus: c.skStatus,

		DataW: c.dataW,
		DataR: c.dataR,

		IOCursor:  c.ioCursor,
		Plane:     c.plane,
		PlaneWrap: c.planeWrap,
		WordX:     c.wordX,
		WordY:     c.wordY,

		MemControl:       c.memControl,
		LineTypeAreaFill: c.lineTypeAreaFill,
		LineTypeMask:     c.lineTypeMask,
		RepeatCount:      c.repeatCount,
		MusicMemory:      c.musicMemory,
		Xpt:              c.xpt,
		Ypt:              c.ypt,
		LastXpt:          c.lastXpt,
		LastYpt:          c.lastYpt,

		CursorX:     c.cursorX,
		CursorY:     c.cursorY,
		CursorFS:    c.cursorFS,
		CursorGC:    c.cursorGC,
		CursorColor: c.cursorColor,

		MAR:        c.mar,
		VideoWord:  c.videoWord,
		LoadMAR:    c.loadMAR,
		FirstMAR:   c.firstMAR,
		ByteIdx:    c.byteIdx,
		VideoAttr:  c.videoAttr,
		Blanked:    c.blanked,
		GraphicSel: c.graphicSel,
		AlphaSel:   c.alphaSel,
		BuffIdx:    c.buffIdx,

		LightPen: LightPenSnapshot{
			Enabled:    c.lp.enabled,
			IntEn:      c.lp.intEn,
			Status:     c.lp.status,
			RegCnt:     c.lp.regCnt,
			Selftest:   c.lp.selftest,
			XWindow:    c.lp.xwindow,
			YWindow:    c.lp.ywindow,
			Interlace:  c.lp.interlace,
			VBlank:     c.lp.vblank,
			FirstHit:   c.lp.firstHit,
			VBInt:      c.lp.vbint,
			Fullbright: c.lp.fullbright,
			Threshold:  c.lp.threshold,
			X:          c.lp.x,
			Y:          c.lp.y,
			Switch:     c.lp.sw,
			CursorX:    c.lp.cursorX,
			CursorY:    c.lp.cursorY,
			CursorFS:   c.lp.cursorFS,
			Data:       c.lp.data,
		},

		WakeAt:      c.wakeAt,
		WakePending: c.wakePending,
	}
	for i := range c.videoBuff {
		s.Rows[i] = RowSnapshot{
			Chars: c.videoBuff[i].chars,
			Attrs: c.videoBuff[i].attrs,
			Full:  c.videoBuff[i].full,
		}
	}
	s.Planes = make([][]uint16, len(c.planes))
	for i, p := range c.planes {
		s.Planes[i] = append([]uint16(nil), p...)
	}
	return s
}

// Restore replaces the controller state with a snapshot. The snapshot
// must come from a controller of the same variant.
func (c *Controller) Restore(s Snapshot) error {
	if len(s.Planes) != len(c.planes) {
		return fmt.Errorf("snapshot has %d planes, controller has %d", len(s.Planes), len(c.planes))
	}
	for i, p := range s.Planes {
		if len(p) != gvMemSize {
			return fmt.Errorf("snapshot plane %d has %d words, want %d", i, len(p), gvMemSize)
		}
	}

	c.fsm = State(s.FSM)
	c.cmd = s.Cmd
	c.lastCmd = s.LastCmd

	c.dmaEn = s.DMAEn
	c.intEn = s.IntEn
	c.grEn = s.GrEn
	c.skEn = s.SkEn
	c.optEn = s.OptEn
	c.dsaEn = s.DsaEn
	c.skStatus = s.SkStatus

	c.dataW = s.DataW
	c.dataR = s.DataR

	c.ioCursor = s.IOCursor
	c.plane = s.Plane
	c.planeWrap = s.PlaneWrap
	c.wordX = s.WordX
	c.wordY = s.WordY

	c.memControl = s.MemControl
	c.lineTypeAreaFill = s.LineTypeAreaFill
	c.lineTypeMask = s.LineTypeMask
	c.repeatCount = s.RepeatCount
	c.musicMemory = s.MusicMemory
	c.xpt = s.Xpt
	c.ypt = s.Ypt
	c.lastXpt = s.LastXpt
	c.lastYpt = s.LastYpt

	c.cursorX = s.CursorX
	c.cursorY = s.CursorY
	c.cursorFS = s.CursorFS
	c.cursorGC = s.CursorGC
	c.cursorColor = s.CursorColor

	c.mar = s.MAR
	c.videoWord = s.VideoWord
	c.loadMAR = s.LoadMAR
	c.firstMAR = s.FirstMAR
	c.byteIdx = s.ByteIdx
	c.videoAttr = s.VideoAttr
	c.blanked = s.Blanked
	c.graphicSel = s.GraphicSel
	c.alphaSel = s.AlphaSel
	c.buffIdx = s.BuffIdx
	for i := range c.videoBuff {
		c.videoBuff[i] = rowBuffer{
			chars: s.Rows[i].Chars,
			attrs: s.Rows[i].Attrs,
			full:  s.Rows[i].Full,
		}
	}

	c.lp = lightPen{
		enabled:    s.LightPen.Enabled,
		intEn:      s.LightPen.IntEn,
		status:     s.LightPen.Status,
		regCnt:     s.LightPen.RegCnt,
		selftest:   s.LightPen.Selftest,
		xwindow:    s.LightPen.XWindow,
		ywindow:    s.LightPen.YWindow,
		interlace:  s.LightPen.Interlace,
		vblank:     s.LightPen.VBlank,
		firstHit:   s.LightPen.FirstHit,
		vbint:      s.LightPen.VBInt,
		fullbright: s.LightPen.Fullbright,
		threshold:  s.LightPen.Threshold,
		x:          s.LightPen.X,
		y:          s.LightPen.Y,
		sw:         s.LightPen.Switch,
		cursorX:    s.LightPen.CursorX,
		cursorY:    s.LightPen.CursorY,
		cursorFS:   s.LightPen.CursorFS,
		data:       s.LightPen.Data,
	}

	c.wakeAt = s.WakeAt
	c.wakePending = s.WakePending

	for i, p := range s.Planes {
		copy(c.planes[i], p)
	}

	c.updateSignals()
	return nil
}
