package wire

// Song Position Pointer maths. One SPP beat is 6 MIDI clocks, i.e. one
// sixteenth note, so 4 beats make a quarter note and 16 make a 4/4 bar.

// SongPositionBytes splits a 14-bit beat count into its two 7-bit wire
// bytes, LSB first. Bits above 14 are discarded.
func SongPositionBytes(beats uint16) (lsb, msb byte) {
	return byte(beats & 0x7F), byte(beats >> 7 & 0x7F)
}

// ParseSongPosition rebuilds the 14-bit beat count from the two wire
// bytes of a Song Position message.
func ParseSongPosition(lsb, msb byte) uint16 {
	return uint16(lsb&0x7F) | uint16(msb&0x7F)<<7
}

// QuarterNotes converts an SPP beat count to quarter notes.
func QuarterNotes(beats uint16) float64 {
	return float64(beats) / 4.0
}

// Bars converts an SPP beat count to bars in 4/4. For other time
// signatures divide QuarterNotes by the numerator instead.
func Bars(beats uint16) float64 {
	return float64(beats) / 16.0
}
