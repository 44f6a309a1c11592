package stream

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"

	"midisync/wire"
)

// DefaultChunkSize is the per-write SysEx chunk size used when an
// Output is opened with a non-positive chunk size.
const DefaultChunkSize = 256

// Output sends encoded messages to one driver output port. Sends are
// serialized so interleaved callers cannot shear a SysEx block.
type Output struct {
	mu    sync.Mutex
	out   drivers.Out
	chunk int
}

// OpenOutput prepares out for sending. chunkSize caps the bytes handed
// to the driver per write for SysEx blocks. The port stays owned by
// the caller.
func OpenOutput(out drivers.Out, chunkSize int) (*Output, error) {
	if out == nil {
		return nil, wire.ErrInvalidArgument
	}
	if !out.IsOpen() {
		if err := out.Open(); err != nil {
			return nil, fmt.Errorf("open output %q: %w", out.String(), err)
		}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Output{out: out, chunk: chunkSize}, nil
}

// Port returns the underlying output port.
func (o *Output) Port() drivers.Out {
	return o.out
}

// Send encodes one message and writes it to the port. SysEx messages
// are chunked like SendSysEx.
func (o *Output) Send(msg wire.Message) error {
	if msg.Kind == wire.SysEx {
		return o.SendSysEx(msg.SysEx)
	}
	raw, err := wire.Encode(msg)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.out.Send(raw)
}

// SendSysEx frames payload (0xF0 + payload + 0xF7) and delivers it in
// chunk-sized writes. The receiver's decoder reassembles the block, so
// only the final chunk ends in 0xF7.
func (o *Output) SendSysEx(payload []byte) error {
	raw, err := wire.Encode(wire.Message{Kind: wire.SysEx, SysEx: payload})
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, c := range Chunks(raw, o.chunk) {
		if err := o.out.Send(c); err != nil {
			return fmt.Errorf("send sysex chunk: %w", err)
		}
	}
	return nil
}

// Chunks splits a wire byte block into writes of at most max bytes,
// preserving order and content. max <= 0 returns the block whole.
func Chunks(block []byte, max int) [][]byte {
	if max <= 0 || len(block) <= max {
		return [][]byte{block}
	}
	chunks := make([][]byte, 0, (len(block)+max-1)/max)
	for len(block) > max {
		chunks = append(chunks, block[:max])
		block = block[max:]
	}
	return append(chunks, block)
}
