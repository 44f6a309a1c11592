package transport

import (
	"math"
	"testing"
)

func TestTempoEstimate(t *testing.T) {
	var tempo Tempo

	// First clock only seeds the tracker.
	if bpm := tempo.Clock(1.0); bpm != 0 {
		t.Errorf("first clock returned %v, want 0", bpm)
	}

	// 0.02083s between clocks at 24 ppqn is ~120 BPM.
	bpm := tempo.Clock(1.0 + 0.02083)
	if math.Abs(bpm-120.0) > 0.5 {
		t.Errorf("BPM = %v, want 120 +/- 0.5", bpm)
	}
}

func TestTempoIgnoresNonPositiveInterval(t *testing.T) {
	var tempo Tempo
	tempo.Clock(1.0)
	want := tempo.Clock(1.5) // 40 BPM

	// Out-of-order and duplicate timestamps leave the estimate alone.
	if got := tempo.Clock(1.5); got != want {
		t.Errorf("zero interval changed BPM: %v -> %v", want, got)
	}
	if got := tempo.Clock(1.2); got != want {
		t.Errorf("negative interval changed BPM: %v -> %v", want, got)
	}
}

func TestTempoReset(t *testing.T) {
	var tempo Tempo
	tempo.Clock(1.0)
	tempo.Clock(1.5)
	tempo.Reset()
	if tempo.BPM() != 0 {
		t.Errorf("BPM after reset = %v, want 0", tempo.BPM())
	}
	// The next clock only reseeds.
	if bpm := tempo.Clock(2.0); bpm != 0 {
		t.Errorf("clock after reset returned %v, want 0", bpm)
	}
}
