package testkit

// FlipByte returns a copy of payload with the byte at idx inverted.
// Out of range indexes return an unmodified copy.
func FlipByte(payload []byte, idx int) []byte {
	out := make([]byte, len(payload))
	copy(out, payload)
	if idx >= 0 && idx < len(out) {
		out[idx] ^= 0xFF
	}
	return out
}

// Truncations returns every strict prefix of payload, shortest first.
func Truncations(payload []byte) [][]byte {
	out := make([][]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		out = append(out, payload[:i])
	}
	return out
}
