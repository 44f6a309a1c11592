// Package stream adapts gomidi driver ports to the wire codec: raw
// timestamped byte buffers in, decoded messages out, and encoded bytes
// back to an output port. Choosing and connecting ports is the
// caller's business; this package only runs ports it is handed.
package stream

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"midisync/debug"
	"midisync/wire"
)

// Input pumps one driver input port through a wire.Decoder and
// delivers the resulting messages on a buffered channel.
type Input struct {
	in    drivers.In
	dec   *wire.Decoder
	msgs  chan wire.Message
	stop  func()
	onErr func(error)
}

// OpenInput starts listening on in. sysexCap bounds the SysEx
// reassembly buffer (non-positive selects wire.DefaultSysExCapacity).
// onErr, if non-nil, receives decode and driver errors; on a SysEx
// overflow the decoder is reset so the stream keeps going.
//
// The port itself stays owned by the caller: Close stops listening but
// does not close the port.
func OpenInput(in drivers.In, sysexCap int, onErr func(error)) (*Input, error) {
	if in == nil {
		return nil, wire.ErrInvalidArgument
	}
	s := &Input{
		in:    in,
		dec:   wire.NewDecoder(sysexCap),
		msgs:  make(chan wire.Message, 64),
		onErr: onErr,
	}
	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return nil, fmt.Errorf("open input %q: %w", in.String(), err)
		}
	}
	stop, err := in.Listen(s.receive, drivers.ListenConfig{
		TimeCode:        true,
		ActiveSense:     true,
		SysEx:           true,
		SysExBufferSize: uint32(s.dec.Cap()),
		OnErr:           onErr,
	})
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", in.String(), err)
	}
	s.stop = stop
	return s, nil
}

// Messages returns the decoded message channel. Sends never block the
// driver callback; if the reader lags, messages are dropped.
func (s *Input) Messages() <-chan wire.Message {
	return s.msgs
}

// Port returns the underlying input port.
func (s *Input) Port() drivers.In {
	return s.in
}

// receive runs on the driver's callback thread. The decoder is owned
// by that thread alone; consumers only ever see the channel.
func (s *Input) receive(data []byte, milliseconds int32) {
	msgs, err := s.dec.Feed(float64(milliseconds)/1000.0, data)
	for _, m := range msgs {
		select {
		case s.msgs <- m:
		default:
			debug.LogEvery(100, "stream", "input %s: reader lagging, dropping %s", s.in, m.Kind)
		}
	}
	if err != nil {
		debug.Log("stream", "input %s: %v (resetting decoder, %d bytes dropped)", s.in, err, s.dec.Pending())
		s.dec.Reset()
		if s.onErr != nil {
			s.onErr(err)
		}
	}
}

// Close stops the listener and closes the message channel.
func (s *Input) Close() error {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	close(s.msgs)
	return nil
}
