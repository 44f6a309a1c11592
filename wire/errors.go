package wire

import "errors"

var (
	// ErrInvalidArgument is returned for nil/absent required input.
	ErrInvalidArgument = errors.New("wire: invalid argument")

	// ErrBufferOverflow is returned when a SysEx block exceeds the
	// decoder's configured buffer capacity. Reset the decoder to
	// resume the stream.
	ErrBufferOverflow = errors.New("wire: sysex buffer overflow")

	// ErrInvalidMessage is returned by Encode for a message kind it
	// cannot represent on the wire.
	ErrInvalidMessage = errors.New("wire: invalid message")
)
