package hxbox

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"
)

// Sentinel errors for registry operations.
//
// Errors returned by property mapping functions are never wrapped; callers
// receive exactly the error the function returned.
var (
	ErrNotFound         = errors.New("hxbox: component not found")
	ErrDecryptFailed    = errors.New("hxbox: props decryption failed")
	ErrSignatureInvalid = errors.New("hxbox: signature verification failed")
	ErrInvalidFormat    = errors.New("hxbox: invalid props format")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsInvalidFormat checks if err is a malformed-props error.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// ErrorComponent renders err as an inline error box. The registry uses it
// to answer htmx requests whose render failed, so the swap target shows
// what went wrong instead of going blank.
func ErrorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, werr := io.WriteString(w, `<div class="hxbox-error">Render error: `+templ.EscapeString(err.Error())+`</div>`)
		return werr
	})
}
