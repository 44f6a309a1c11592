package transport

import (
	"testing"

	"midisync/wire"
)

func TestTransportStartStop(t *testing.T) {
	tr := New()

	tr.Handle(wire.Message{Kind: wire.Start})
	s := tr.State()
	if !s.Running || s.Beat != 0 || s.SongPos != 0 {
		t.Errorf("after Start: %+v", s)
	}

	tr.Handle(wire.Message{Kind: wire.Stop})
	if tr.State().Running {
		t.Error("still running after Stop")
	}

	tr.Handle(wire.Message{Kind: wire.Continue})
	if !tr.State().Running {
		t.Error("not running after Continue")
	}
}

func TestTransportCountsBeats(t *testing.T) {
	tr := New()
	tr.Handle(wire.Message{Kind: wire.Start})

	ts := 0.0
	for i := 0; i < ClocksPerQuarter; i++ {
		ts += 0.02083 // ~120 BPM
		tr.Handle(wire.Message{Kind: wire.Clock, Timestamp: ts})
	}

	s := tr.State()
	if s.Beat != 1 || s.ClockInBeat != 0 {
		t.Errorf("after 24 clocks: beat=%d clockInBeat=%d", s.Beat, s.ClockInBeat)
	}
	if s.BPM < 119.5 || s.BPM > 120.5 {
		t.Errorf("BPM = %v, want ~120", s.BPM)
	}
}

func TestTransportIgnoresClockWhileStopped(t *testing.T) {
	tr := New()
	tr.Handle(wire.Message{Kind: wire.Clock, Timestamp: 1.0})
	tr.Handle(wire.Message{Kind: wire.Clock, Timestamp: 1.5})
	s := tr.State()
	if s.Beat != 0 || s.ClockInBeat != 0 || s.BPM != 0 {
		t.Errorf("stopped transport advanced: %+v", s)
	}
}

func TestTransportSongPosition(t *testing.T) {
	tr := New()
	tr.Handle(wire.Message{Kind: wire.SongPosition, Beats: 200})
	if got := tr.State().SongPos; got != 200 {
		t.Errorf("SongPos = %d, want 200", got)
	}

	// Start rewinds to zero.
	tr.Handle(wire.Message{Kind: wire.Start})
	if got := tr.State().SongPos; got != 0 {
		t.Errorf("SongPos after Start = %d, want 0", got)
	}
}

func TestTransportAssemblesTimecode(t *testing.T) {
	tr := New()

	// 01:23:45:10 at 30fps as quarter-frame data bytes, slots 0..7.
	qfs := []uint8{0x0A, 0x10, 0x2D, 0x32, 0x47, 0x51, 0x61, 0x76}
	for i, qf := range qfs {
		tr.Handle(wire.Message{Kind: wire.MTCQuarterFrame, Data: [2]uint8{qf, 0}})
		if got := tr.State().HasTimecode; got != (i == 7) {
			t.Fatalf("after piece %d: HasTimecode=%v", i, got)
		}
	}

	tc := tr.State().Timecode
	if tc.Hours != 1 || tc.Minutes != 23 || tc.Seconds != 45 || tc.Frames != 10 {
		t.Errorf("timecode = %+v", tc)
	}
}

func TestTransportReset(t *testing.T) {
	tr := New()
	tr.Handle(wire.Message{Kind: wire.Start})
	tr.Handle(wire.Message{Kind: wire.SongPosition, Beats: 64})
	tr.Handle(wire.Message{Kind: wire.Reset})

	s := tr.State()
	if s.Running || s.SongPos != 0 || s.BPM != 0 {
		t.Errorf("after Reset: %+v", s)
	}
}

func TestTransportUpdatesChannel(t *testing.T) {
	tr := New()
	tr.Handle(wire.Message{Kind: wire.Start})

	select {
	case s := <-tr.Updates():
		if !s.Running {
			t.Errorf("update snapshot %+v, want running", s)
		}
	default:
		t.Fatal("no update after Start")
	}

	// ActiveSense changes nothing and must not produce an update.
	tr.Handle(wire.Message{Kind: wire.ActiveSense})
	select {
	case s := <-tr.Updates():
		t.Errorf("unexpected update %+v for ActiveSense", s)
	default:
	}
}
