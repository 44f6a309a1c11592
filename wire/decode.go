package wire

// DefaultSysExCapacity is the reassembly buffer size used when a
// Decoder is created with a non-positive capacity.
const DefaultSysExCapacity = 4096

// Decoder turns raw MIDI wire bytes into Messages.
//
// One Decoder serves exactly one input stream: the only state carried
// between Feed calls is the SysEx reassembly buffer, so a block split
// across arrivals is stitched back together. No running-status memory
// is kept — a data byte with no status byte in the same buffer is
// silently dropped.
//
// A Decoder is not safe for concurrent use; the owner of the stream
// must serialize Feed/Reset calls.
type Decoder struct {
	sysex   []byte
	inSysEx bool
	limit   int
}

// NewDecoder returns a Decoder whose SysEx reassembly buffer holds at
// most sysexCap payload bytes. Non-positive values select
// DefaultSysExCapacity.
func NewDecoder(sysexCap int) *Decoder {
	if sysexCap <= 0 {
		sysexCap = DefaultSysExCapacity
	}
	return &Decoder{limit: sysexCap}
}

// Reset discards any partially assembled SysEx block. Call it to
// recover the stream after ErrBufferOverflow, or on transport
// Stop/Reset if a sender was cut off mid-block.
func (d *Decoder) Reset() {
	d.sysex = d.sysex[:0]
	d.inSysEx = false
}

// Pending reports how many SysEx payload bytes are buffered awaiting a
// terminator.
func (d *Decoder) Pending() int {
	return len(d.sysex)
}

// Cap returns the configured SysEx buffer capacity.
func (d *Decoder) Cap() int {
	return d.limit
}

// Feed decodes one arrival: a buffer of raw bytes sharing a single
// link-supplied timestamp. It returns the messages completed by this
// buffer, which may be none (mid-SysEx) or several.
//
// Real-time status bytes are emitted from any offset, including inside
// an open SysEx block. Reserved status bytes (0xF4, 0xF5, 0xF9, 0xFD)
// are skipped without error. If a SysEx block outgrows the buffer
// capacity, Feed stops and returns ErrBufferOverflow along with the
// messages decoded so far; the decoder stays poisoned until Reset.
func (d *Decoder) Feed(timestamp float64, data []byte) ([]Message, error) {
	var out []Message
	i := 0
	for i < len(data) {
		b := data[i]

		// Real-time bytes interleave anywhere, even mid-SysEx.
		if b >= 0xF8 {
			if k, ok := realTimeKind(b); ok {
				out = append(out, Message{Kind: k, Timestamp: timestamp})
			}
			i++
			continue
		}

		if d.inSysEx {
			switch b {
			case 0xF7:
				out = append(out, d.endSysEx(timestamp))
			case 0xF0:
				// Continuation chunk re-framed by the link layer.
			default:
				if len(d.sysex) >= d.limit {
					return out, ErrBufferOverflow
				}
				d.sysex = append(d.sysex, b)
			}
			i++
			continue
		}

		switch {
		case b == 0xF0:
			d.inSysEx = true
			i++

		case b == 0xF1: // MTC quarter frame
			m := Message{Kind: MTCQuarterFrame, Timestamp: timestamp}
			i++
			if i < len(data) {
				m.Data[0] = data[i]
				i++
			}
			out = append(out, m)

		case b == 0xF2: // song position pointer
			m := Message{Kind: SongPosition, Timestamp: timestamp}
			i++
			if i+1 < len(data) {
				lsb, msb := data[i], data[i+1]
				i += 2
				m.Data[0], m.Data[1] = lsb, msb
				m.Beats = ParseSongPosition(lsb, msb)
			}
			out = append(out, m)

		case b == 0xF3: // song select
			m := Message{Kind: SongSelect, Timestamp: timestamp}
			i++
			if i < len(data) {
				m.Data[0] = data[i]
				i++
			}
			out = append(out, m)

		case b == 0xF6:
			out = append(out, Message{Kind: TuneRequest, Timestamp: timestamp})
			i++

		case b == 0xF4 || b == 0xF5: // reserved system common
			i++

		case b >= 0x80: // channel voice
			k := Kind(b >> 4)
			m := Message{Kind: k, Channel: b & 0x0F, Timestamp: timestamp}
			i++
			if i < len(data) {
				m.Data[0] = data[i]
				i++
			}
			if channelDataLen(k) == 2 && i < len(data) {
				m.Data[1] = data[i]
				i++
			}
			out = append(out, m)

		default:
			// Data byte with no status context. Running status is
			// not tracked, so there is nothing to attach it to.
			i++
		}
	}
	return out, nil
}

func (d *Decoder) endSysEx(timestamp float64) Message {
	payload := make([]byte, len(d.sysex))
	copy(payload, d.sysex)
	d.sysex = d.sysex[:0]
	d.inSysEx = false
	return Message{Kind: SysEx, SysEx: payload, Timestamp: timestamp}
}

// realTimeKind maps 0xF8-0xFF to a Kind. 0xF9 and 0xFD are undefined
// by MIDI 1.0 and report ok=false.
func realTimeKind(b byte) (Kind, bool) {
	switch b {
	case 0xF8:
		return Clock, true
	case 0xFA:
		return Start, true
	case 0xFB:
		return Continue, true
	case 0xFC:
		return Stop, true
	case 0xFE:
		return ActiveSense, true
	case 0xFF:
		return Reset, true
	}
	return 0, false
}
