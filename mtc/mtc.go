// Package mtc assembles MIDI Time Code quarter-frame messages into
// full SMPTE timecode frames.
//
// A sender transmits a frame as eight quarter-frame bytes (status
// 0xF1). Bits 4-6 of each byte select which of the eight pieces it
// carries, the low nibble is the piece value, so pieces may arrive in
// any order and a repeated piece simply overwrites its slot.
package mtc

import "fmt"

// Rate is the frame rate code carried in piece 7 of a quarter-frame
// cycle.
type Rate uint8

const (
	Rate24 Rate = iota // 24 fps (film)
	Rate25             // 25 fps (PAL)
	Rate30Drop         // 29.97 fps drop-frame (NTSC)
	Rate30             // 30 fps
)

// FPS returns the nominal frames per second for the rate.
func (r Rate) FPS() float64 {
	switch r & 3 {
	case Rate24:
		return 24.0
	case Rate25:
		return 25.0
	case Rate30Drop:
		return 29.97
	default:
		return 30.0
	}
}

func (r Rate) String() string {
	switch r & 3 {
	case Rate24:
		return "24fps"
	case Rate25:
		return "25fps"
	case Rate30Drop:
		return "29.97fps (drop)"
	default:
		return "30fps"
	}
}

// Frame is one decoded SMPTE timecode frame.
type Frame struct {
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
	Frames  uint8 // bounded by Rate
	Rate    Rate
}

// TotalSeconds converts the frame to seconds from midnight. Drop-frame
// rate divides by 29.97 like the others; no drop-frame renumbering
// correction is applied.
func (f Frame) TotalSeconds() float64 {
	return float64(f.Hours)*3600 +
		float64(f.Minutes)*60 +
		float64(f.Seconds) +
		float64(f.Frames)/f.Rate.FPS()
}

func (f Frame) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d %s",
		f.Hours, f.Minutes, f.Seconds, f.Frames, f.Rate)
}

// Accumulator collects quarter-frame bytes until a full frame can be
// decoded. Keep one per input stream; the zero value is ready to use.
// It is owned by whoever feeds the stream and is not safe for
// concurrent use.
type Accumulator struct {
	pieces [8]uint8
	count  uint8
}

// Piece layout, indexed by bits 4-6 of the quarter-frame byte:
//
//	0 frames  low nibble   1 frames  high (bit 0 only)
//	2 seconds low nibble   3 seconds high nibble
//	4 minutes low nibble   5 minutes high nibble
//	6 hours   low nibble   7 hours bit 4 (bit 0) + rate (bits 1-2)

// Push stores one quarter-frame byte (the data byte of an 0xF1
// message). On the eighth push it decodes and returns the assembled
// frame with ok=true and clears the received count for the next cycle;
// earlier pushes return ok=false.
func (a *Accumulator) Push(qf byte) (Frame, bool) {
	piece := qf >> 4 & 0x07
	a.pieces[piece] = qf & 0x0F
	a.count++
	if a.count < 8 {
		return Frame{}, false
	}
	a.count = 0
	return Frame{
		Frames:  a.pieces[0] | a.pieces[1]<<4,
		Seconds: a.pieces[2] | a.pieces[3]<<4,
		Minutes: a.pieces[4] | a.pieces[5]<<4,
		Hours:   a.pieces[6] | (a.pieces[7]&0x01)<<4,
		Rate:    Rate(a.pieces[7] >> 1 & 0x03),
	}, true
}

// Reset clears the accumulator. Call it when the transport stops or
// resets so a stale half-cycle cannot bleed into the next frame.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
