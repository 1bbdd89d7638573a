package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode is returned for any truncated or malformed frame. Receivers
// treat it as a dropped message, never a fatal error
var ErrDecode = errors.New("malformed protocol message")

type decodeError struct {
	cause error
}

func (d decodeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDecode, d.cause)
}

func (d decodeError) Is(target error) bool {
	return target == ErrDecode
}

func (d decodeError) Unwrap() error {
	return d.cause
}

// Encode builds a frame: one kind byte, a uvarint payload length, and the
// JSON payload
func Encode(kind Kind, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 1+binary.MaxVarintLen64+len(body))
	buf[0] = byte(kind)
	n := binary.PutUvarint(buf[1:], uint64(len(body)))

	copy(buf[1+n:], body)
	return buf[:1+n+len(body)], nil
}

// MustEncode encodes a frame and panics on failure. Payload types in this
// package always marshal
func MustEncode(kind Kind, payload interface{}) []byte {
	b, err := Encode(kind, payload)
	if err != nil {
		panic(err)
	}

	return b
}

// Decode parses a frame. The payload must be valid JSON of exactly the
// declared length
func Decode(b []byte) (*Message, error) {
	if len(b) < 2 {
		return nil, decodeError{errors.New("frame too short")}
	}

	kind := Kind(b[0])
	if kind < KindJoinRequest || kind > KindGameOver {
		return nil, decodeError{fmt.Errorf("unknown kind %d", b[0])}
	}

	length, n := binary.Uvarint(b[1:])
	if n <= 0 {
		return nil, decodeError{errors.New("bad payload length")}
	}

	body := b[1+n:]
	if uint64(len(body)) != length {
		return nil, decodeError{fmt.Errorf("expected %d payload bytes, got %d", length, len(body))}
	}

	if !json.Valid(body) {
		return nil, decodeError{errors.New("payload is not valid JSON")}
	}

	return &Message{
		Kind:    kind,
		Payload: json.RawMessage(body),
	}, nil
}
