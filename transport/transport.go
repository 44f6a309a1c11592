// Package transport tracks DAW synchronization state from a decoded
// MIDI stream: transport run state, beat position, BPM, Song Position
// and MTC timecode.
package transport

import (
	"sync"

	"midisync/mtc"
	"midisync/wire"
)

// State is a snapshot of the sync state after one handled message.
type State struct {
	Running     bool
	Beat        int // beats since last Start
	ClockInBeat int // 0-23 within the current beat
	BPM         float64
	SongPos     uint16 // most recent SPP beat count
	Timecode    mtc.Frame
	HasTimecode bool // a full MTC frame has been assembled
}

// Transport consumes decoded messages from exactly one input stream.
// Handle must be called from a single goroutine (normally the one
// draining the stream); other goroutines observe the state through
// Updates or the State snapshot, never by sharing fields.
type Transport struct {
	mu    sync.RWMutex
	state State

	tempo Tempo
	mtc   mtc.Accumulator

	updates chan State
}

func New() *Transport {
	return &Transport{
		updates: make(chan State, 16),
	}
}

// Updates delivers a snapshot after every message that changed the
// state. Sends never block: if the reader lags, intermediate snapshots
// are dropped and only the latest picture matters.
func (t *Transport) Updates() <-chan State {
	return t.updates
}

// State returns the current snapshot.
func (t *Transport) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Handle feeds one decoded message through the state machine.
func (t *Transport) Handle(msg wire.Message) {
	t.mu.Lock()
	changed := t.apply(msg)
	snapshot := t.state
	t.mu.Unlock()

	if !changed {
		return
	}
	select {
	case t.updates <- snapshot:
	default:
	}
}

func (t *Transport) apply(msg wire.Message) bool {
	s := &t.state
	switch msg.Kind {
	case wire.Start:
		s.Running = true
		s.Beat = 0
		s.ClockInBeat = 0
		s.SongPos = 0
		return true

	case wire.Continue:
		s.Running = true
		return true

	case wire.Stop:
		s.Running = false
		return true

	case wire.Clock:
		if !s.Running {
			return false
		}
		s.BPM = t.tempo.Clock(msg.Timestamp)
		s.ClockInBeat++
		if s.ClockInBeat >= ClocksPerQuarter {
			s.ClockInBeat = 0
			s.Beat++
		}
		return true

	case wire.SongPosition:
		s.SongPos = msg.Beats
		return true

	case wire.MTCQuarterFrame:
		frame, ok := t.mtc.Push(msg.Data[0])
		if !ok {
			return false
		}
		s.Timecode = frame
		s.HasTimecode = true
		return true

	case wire.Reset:
		t.tempo.Reset()
		t.mtc.Reset()
		*s = State{}
		return true

	case wire.ActiveSense:
		// Keepalive only; nothing to update.
		return false
	}
	return false
}
