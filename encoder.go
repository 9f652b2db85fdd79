package hxbox

import (
	"errors"

	"github.com/pthm/hxbox/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeProps encodes a property bag for use in a URL.
func EncodeProps(enc *Encoder, props Props, sensitive bool) (string, error) {
	return enc.Encode(props, sensitive)
}

// DecodeProps reverses EncodeProps. Errors map onto the hxbox sentinels.
func DecodeProps(enc *Encoder, encoded string, sensitive bool) (Props, error) {
	var props Props
	if err := enc.Decode(encoded, sensitive, &props); err != nil {
		return Props{}, wrapEncodingError(err)
	}
	return props, nil
}

// wrapEncodingError wraps encoding package errors with hxbox sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return ErrInvalidFormat
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
