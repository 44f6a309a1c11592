package wire

import "fmt"

// Kind identifies a decoded MIDI message.
//
// Channel kinds equal the high nibble of the status byte (0x08-0x0E).
// System kinds use values above 0x0F so they never collide with a
// channel kind.
type Kind uint8

const (
	// Channel messages — kind = (status >> 4) & 0x0F
	NoteOff         Kind = 0x08 // 0x8n
	NoteOn          Kind = 0x09 // 0x9n
	PolyPressure    Kind = 0x0A // 0xAn
	ControlChange   Kind = 0x0B // 0xBn
	ProgramChange   Kind = 0x0C // 0xCn
	ChannelPressure Kind = 0x0D // 0xDn
	PitchBend       Kind = 0x0E // 0xEn

	// System common
	SysEx           Kind = 0x10 // 0xF0 ... 0xF7
	MTCQuarterFrame Kind = 0x11 // 0xF1, Data[0] = piece+nibble byte
	SongPosition    Kind = 0x12 // 0xF2, Beats = 14-bit beat count
	SongSelect      Kind = 0x13 // 0xF3, Data[0] = song number
	TuneRequest     Kind = 0x14 // 0xF6, no data

	// System real-time — single status byte, may interleave anywhere
	Clock       Kind = 0x18 // 0xF8, 24 pulses per quarter note
	Start       Kind = 0x1A // 0xFA
	Continue    Kind = 0x1B // 0xFB
	Stop        Kind = 0x1C // 0xFC
	ActiveSense Kind = 0x1E // 0xFE, ~300ms keepalive from DAWs
	Reset       Kind = 0x1F // 0xFF
)

// IsChannel reports whether k is a channel-voice kind (carries Channel).
func (k Kind) IsChannel() bool {
	return k >= NoteOff && k <= PitchBend
}

// IsRealTime reports whether k is a system real-time kind.
func (k Kind) IsRealTime() bool {
	return k >= Clock && k <= Reset
}

func (k Kind) String() string {
	switch k {
	case NoteOff:
		return "NoteOff"
	case NoteOn:
		return "NoteOn"
	case PolyPressure:
		return "PolyPressure"
	case ControlChange:
		return "ControlChange"
	case ProgramChange:
		return "ProgramChange"
	case ChannelPressure:
		return "ChannelPressure"
	case PitchBend:
		return "PitchBend"
	case SysEx:
		return "SysEx"
	case MTCQuarterFrame:
		return "MTCQuarterFrame"
	case SongPosition:
		return "SongPosition"
	case SongSelect:
		return "SongSelect"
	case TuneRequest:
		return "TuneRequest"
	case Clock:
		return "Clock"
	case Start:
		return "Start"
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	case ActiveSense:
		return "ActiveSense"
	case Reset:
		return "Reset"
	}
	return fmt.Sprintf("Kind(0x%02X)", uint8(k))
}

// Message is one decoded MIDI event.
//
// Channel is meaningful only for channel kinds and is always 0-15.
// Data[1] is zero for ProgramChange and ChannelPressure.
// Beats is set only for SongPosition (14-bit, <= 0x3FFF).
// SysEx holds the payload between the 0xF0/0xF7 framing bytes and is
// owned by the receiver.
// Timestamp is link-supplied (monotonic seconds) and passes through the
// codec untouched.
type Message struct {
	Kind      Kind
	Channel   uint8
	Data      [2]uint8
	Beats     uint16
	SysEx     []byte
	Timestamp float64
}

func (m Message) String() string {
	switch {
	case m.Kind.IsChannel():
		return fmt.Sprintf("%s ch=%d data=[%d %d]", m.Kind, m.Channel, m.Data[0], m.Data[1])
	case m.Kind == SysEx:
		return fmt.Sprintf("SysEx %d bytes", len(m.SysEx))
	case m.Kind == SongPosition:
		return fmt.Sprintf("SongPosition beats=%d", m.Beats)
	case m.Kind == MTCQuarterFrame, m.Kind == SongSelect:
		return fmt.Sprintf("%s data=%d", m.Kind, m.Data[0])
	}
	return m.Kind.String()
}

// channelDataLen returns the data byte count for a channel kind.
func channelDataLen(k Kind) int {
	switch k {
	case ProgramChange, ChannelPressure:
		return 1
	default:
		return 2
	}
}
