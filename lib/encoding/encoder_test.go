package encoding

import (
	"errors"
	"strings"
	"testing"
)

type payload struct {
	ID   int64  `msgpack:"id"`
	Tag  string `msgpack:"tag"`
	Flag bool   `msgpack:"flag"`
}

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this key is quite a bit longer than thirty-two bytes")); err != nil {
		t.Fatalf("NewEncoder with long key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sensitive := range []bool{false, true} {
		original := payload{ID: 12345, Tag: "article", Flag: true}

		encoded, err := enc.Encode(original, sensitive)
		if err != nil {
			t.Fatalf("Encode(sensitive=%v) failed: %v", sensitive, err)
		}
		if strings.ContainsAny(encoded, "+/=") {
			t.Errorf("encoded string is not URL safe: %q", encoded)
		}
		if !sensitive && !strings.Contains(encoded, ".") {
			t.Errorf("signed encoding should carry a signature: %q", encoded)
		}

		var decoded payload
		if err := enc.Decode(encoded, sensitive, &decoded); err != nil {
			t.Fatalf("Decode(sensitive=%v) failed: %v", sensitive, err)
		}
		if decoded != original {
			t.Errorf("sensitive=%v: got %+v, want %+v", sensitive, decoded, original)
		}
	}
}

func TestEncryptedIsOpaque(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(payload{Tag: "very-visible-tag"}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	signed, _ := enc.Encode(payload{Tag: "very-visible-tag"}, false)
	if encoded == signed {
		t.Error("encrypted and signed encodings should differ")
	}

	again, _ := enc.Encode(payload{Tag: "very-visible-tag"}, true)
	if encoded == again {
		t.Error("encryption should use a fresh nonce each time")
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(payload{ID: 123, Tag: "test"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Tamper with the signature
	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded payload
	err = enc.Decode(tampered, false, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) && !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected signature error, got: %v", err)
	}
}

func TestPayloadTamperingDetected(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	a, _ := enc.Encode(payload{Tag: "a"}, false)
	b, _ := enc.Encode(payload{Tag: "b"}, false)

	// Payload of a with signature of b
	forged := strings.SplitN(a, ".", 2)[0] + "." + strings.SplitN(b, ".", 2)[1]

	var decoded payload
	if err := enc.Decode(forged, false, &decoded); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(payload{ID: 123, Tag: "test"}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "XX"

	var decoded payload
	err = enc.Decode(tampered, true, &decoded)
	if !errors.Is(err, ErrDecryptFailed) && !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected decrypt error, got: %v", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	tests := []struct {
		name      string
		encoded   string
		sensitive bool
	}{
		{"missing separator", "invalidbase64withoutseparator", false},
		{"bad payload base64", "!!!.AAAA", false},
		{"ciphertext too short", "AAAA", true},
		{"bad ciphertext base64", "***", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded payload
			if err := enc.Decode(tt.encoded, tt.sensitive, &decoded); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("expected ErrInvalidFormat, got: %v", err)
			}
		})
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	for _, sensitive := range []bool{false, true} {
		encoded, err := enc1.Encode(payload{ID: 123}, sensitive)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		var decoded payload
		if err := enc2.Decode(encoded, sensitive, &decoded); err == nil {
			t.Errorf("sensitive=%v: expected error when decoding with different key", sensitive)
		}
	}
}

func TestEncodeUnsupportedValue(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	if _, err := enc.Encode(map[string]any{"fn": func() {}}, false); err == nil {
		t.Error("expected error encoding a function value")
	}
}
