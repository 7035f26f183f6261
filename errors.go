package hxslot

import "errors"

// Sentinel errors for snapshot and theme operations. Slot resolution
// itself never fails.
var (
	ErrInvalidFormat     = errors.New("hxslot: invalid override format")
	ErrSignatureInvalid  = errors.New("hxslot: signature verification failed")
	ErrDecryptFailed     = errors.New("hxslot: override decryption failed")
	ErrUnknownRenderable = errors.New("hxslot: renderable not registered")
	ErrInvalidTheme      = errors.New("hxslot: invalid theme")
)

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}
