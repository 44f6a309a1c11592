package mtc

import (
	"math"
	"testing"
)

// pieceBytes builds the 8 quarter-frame bytes for a timecode in slot
// order 0..7.
func pieceBytes(hours, minutes, seconds, frames uint8, rate Rate) [8]byte {
	nibbles := [8]byte{
		frames & 0x0F,
		frames >> 4 & 0x01,
		seconds & 0x0F,
		seconds >> 4,
		minutes & 0x0F,
		minutes >> 4,
		hours & 0x0F,
		byte(rate)<<1 | hours>>4&0x01,
	}
	var out [8]byte
	for piece, n := range nibbles {
		out[piece] = byte(piece)<<4 | n
	}
	return out
}

func TestPushAssemblesFrame(t *testing.T) {
	// 01:23:45:10 at 30fps. Pieces in wire order: 0xA, 0x0, 0xD,
	// 0x2, 0x7, 0x1, 0x1, 0x6.
	var acc Accumulator
	qfs := pieceBytes(1, 23, 45, 10, Rate30)

	for i := 0; i < 7; i++ {
		if _, ok := acc.Push(qfs[i]); ok {
			t.Fatalf("push %d returned a frame early", i+1)
		}
	}
	frame, ok := acc.Push(qfs[7])
	if !ok {
		t.Fatal("8th push did not return a frame")
	}
	want := Frame{Hours: 1, Minutes: 23, Seconds: 45, Frames: 10, Rate: Rate30}
	if frame != want {
		t.Errorf("got %+v, want %+v", frame, want)
	}
}

func TestPushSlotFromByteNotArrivalOrder(t *testing.T) {
	// Slots come from bits 4-6 of each byte, so reversed delivery
	// must still land every piece correctly.
	var acc Accumulator
	qfs := pieceBytes(12, 34, 56, 20, Rate25)

	for i := 7; i >= 1; i-- {
		if _, ok := acc.Push(qfs[i]); ok {
			t.Fatalf("slot %d returned a frame early", i)
		}
	}
	frame, ok := acc.Push(qfs[0])
	if !ok {
		t.Fatal("8th push did not return a frame")
	}
	want := Frame{Hours: 12, Minutes: 34, Seconds: 56, Frames: 20, Rate: Rate25}
	if frame != want {
		t.Errorf("got %+v, want %+v", frame, want)
	}
}

func TestAccumulatorResetsAfterFrame(t *testing.T) {
	var acc Accumulator
	qfs := pieceBytes(0, 0, 1, 0, Rate24)
	for _, qf := range qfs {
		acc.Push(qf)
	}
	// Next full cycle decodes again from scratch.
	qfs = pieceBytes(0, 0, 2, 0, Rate24)
	var frame Frame
	var ok bool
	for _, qf := range qfs {
		frame, ok = acc.Push(qf)
	}
	if !ok || frame.Seconds != 2 {
		t.Errorf("second cycle: ok=%v frame=%+v", ok, frame)
	}
}

func TestExplicitReset(t *testing.T) {
	var acc Accumulator
	qfs := pieceBytes(1, 2, 3, 4, Rate30)
	for i := 0; i < 5; i++ {
		acc.Push(qfs[i])
	}
	acc.Reset()
	// A fresh cycle needs all 8 pushes again.
	for i, qf := range qfs {
		_, ok := acc.Push(qf)
		if ok != (i == 7) {
			t.Fatalf("push %d after reset: ok=%v", i+1, ok)
		}
	}
}

func TestTotalSeconds(t *testing.T) {
	f := Frame{Hours: 1, Minutes: 23, Seconds: 45, Frames: 15, Rate: Rate30}
	want := 1*3600.0 + 23*60.0 + 45.0 + 15.0/30.0
	if got := f.TotalSeconds(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalSeconds = %v, want %v", got, want)
	}

	// Drop-frame divides by 29.97, nothing fancier.
	df := Frame{Frames: 30, Rate: Rate30Drop}
	if got := df.TotalSeconds(); math.Abs(got-30.0/29.97) > 1e-9 {
		t.Errorf("drop-frame TotalSeconds = %v, want %v", got, 30.0/29.97)
	}
}

func TestRateStrings(t *testing.T) {
	tests := []struct {
		rate Rate
		fps  float64
		str  string
	}{
		{Rate24, 24.0, "24fps"},
		{Rate25, 25.0, "25fps"},
		{Rate30Drop, 29.97, "29.97fps (drop)"},
		{Rate30, 30.0, "30fps"},
	}
	for _, tt := range tests {
		if tt.rate.FPS() != tt.fps {
			t.Errorf("%v.FPS() = %v, want %v", tt.rate, tt.rate.FPS(), tt.fps)
		}
		if tt.rate.String() != tt.str {
			t.Errorf("%v.String() = %q, want %q", tt.rate, tt.rate, tt.str)
		}
	}
}

func TestFrameString(t *testing.T) {
	f := Frame{Hours: 1, Minutes: 23, Seconds: 45, Frames: 10, Rate: Rate30}
	if got := f.String(); got != "01:23:45:10 30fps" {
		t.Errorf("String() = %q", got)
	}
}
