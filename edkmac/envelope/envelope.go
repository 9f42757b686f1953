package envelope

const (
	FormatRaw byte = 0
	FormatLZ4 byte = 1
)

// Wrap frames data, compressing it only if that makes it smaller.
func Wrap(data []byte, level Level) []byte {
	if compressed, err := Compress(data, level); err == nil && len(compressed) < len(data) {
		return frame(FormatLZ4, compressed)
	}
	return frame(FormatRaw, data)
}

// WrapRaw frames data without compression.
func WrapRaw(data []byte) []byte {
	return frame(FormatRaw, data)
}

func frame(format byte, payload []byte) []byte {
	out := make([]byte, 1+len(payload))
	out[0] = format
	copy(out[1:], payload)
	return out
}

// Unwrap reverses Wrap.
func Unwrap(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrUnknownFormat
	}
	switch b[0] {
	case FormatRaw:
		return append([]byte{}, b[1:]...), nil
	case FormatLZ4:
		return Decompress(b[1:])
	default:
		return nil, ErrUnknownFormat
	}
}
