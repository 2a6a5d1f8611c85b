package crypto

import "strings"

// ChecksumCase applies the EIP-55 mixed-case checksum to a lowercase hex
// string without prefix. The digest is taken over the ASCII text of the hex
// string, not over the bytes it encodes.
func ChecksumCase(lowerHex string) string {
	digest := HexEncode(Keccak256([]byte(lowerHex)))
	var b strings.Builder
	b.Grow(len(lowerHex))
	for i := 0; i < len(lowerHex); i++ {
		c := lowerHex[i]
		if c >= 'a' && c <= 'f' && i < len(digest) && nibble(digest[i]) >= 8 {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func nibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return 0
	}
}
