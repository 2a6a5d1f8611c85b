package crypto

import "errors"

var (
	// ErrEmptyInput is returned when a required string argument is empty.
	ErrEmptyInput = errors.New("crypto: empty input")
	// ErrDecode is returned when base58 or hex input is malformed. The wrapped
	// message names the encoding that failed.
	ErrDecode = errors.New("crypto: decode error")
	// ErrInvalidPublicKey is returned when bytes do not describe a valid
	// secp256k1 curve point.
	ErrInvalidPublicKey = errors.New("crypto: invalid public key")
	// ErrInvalidNetwork is returned for LTO network selectors other than 'L' and 'T'.
	ErrInvalidNetwork = errors.New("crypto: invalid network id")
	// ErrInvalidAddress is returned when an encoded LTO address fails validation.
	ErrInvalidAddress = errors.New("crypto: invalid address")
)
