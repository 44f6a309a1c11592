package wire

// Encode produces the exact wire bytes for one outbound message.
//
// For SysEx the result is the complete logical block
// (0xF0 + payload + 0xF7); splitting it into link-sized chunks is the
// link layer's job. Unknown kinds return ErrInvalidMessage.
func Encode(m Message) ([]byte, error) {
	switch {
	case m.Kind.IsChannel():
		status := byte(m.Kind)<<4 | m.Channel&0x0F
		if channelDataLen(m.Kind) == 1 {
			return []byte{status, m.Data[0] & 0x7F}, nil
		}
		return []byte{status, m.Data[0] & 0x7F, m.Data[1] & 0x7F}, nil

	case m.Kind == SysEx:
		buf := make([]byte, 0, len(m.SysEx)+2)
		buf = append(buf, 0xF0)
		buf = append(buf, m.SysEx...)
		return append(buf, 0xF7), nil

	case m.Kind == MTCQuarterFrame:
		return []byte{0xF1, m.Data[0] & 0x7F}, nil

	case m.Kind == SongPosition:
		lsb, msb := SongPositionBytes(m.Beats)
		return []byte{0xF2, lsb, msb}, nil

	case m.Kind == SongSelect:
		return []byte{0xF3, m.Data[0] & 0x7F}, nil

	case m.Kind == TuneRequest:
		return []byte{0xF6}, nil

	case m.Kind.IsRealTime():
		b, ok := realTimeByte(m.Kind)
		if !ok {
			return nil, ErrInvalidMessage
		}
		return []byte{b}, nil
	}
	return nil, ErrInvalidMessage
}

func realTimeByte(k Kind) (byte, bool) {
	switch k {
	case Clock:
		return 0xF8, true
	case Start:
		return 0xFA, true
	case Continue:
		return 0xFB, true
	case Stop:
		return 0xFC, true
	case ActiveSense:
		return 0xFE, true
	case Reset:
		return 0xFF, true
	}
	return 0, false
}
