package transport

// ClocksPerQuarter is fixed by MIDI 1.0: 24 Clock messages per quarter
// note.
const ClocksPerQuarter = 24

// Tempo estimates BPM from the interval between consecutive Clock
// message timestamps on one stream.
//
// The first clock only seeds the tracker, and a non-positive interval
// (jitter, out-of-order delivery) leaves the previous estimate
// untouched rather than producing a bogus value.
type Tempo struct {
	lastClock float64
	bpm       float64
}

// Clock feeds one Clock-message timestamp (monotonic seconds) and
// returns the current BPM estimate.
func (t *Tempo) Clock(timestamp float64) float64 {
	if t.lastClock > 0 {
		if dt := timestamp - t.lastClock; dt > 0 {
			t.bpm = 60.0 / (dt * ClocksPerQuarter)
		}
	}
	t.lastClock = timestamp
	return t.bpm
}

// BPM returns the current estimate, zero before the first measurable
// interval.
func (t *Tempo) BPM() float64 {
	return t.bpm
}

// Reset clears the estimate and the last-clock seed.
func (t *Tempo) Reset() {
	*t = Tempo{}
}
