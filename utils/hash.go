package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// KeccakHash32 hashes a string and returns the first 32 characters of the
// hex-encoded digest.
func KeccakHash32(s string) string {
	return KeccakHash32Bytes([]byte(s))
}

func KeccakHash32Bytes(bz []byte) string {
	hash := sha3.NewLegacyKeccak256()

	var buf []byte
	hash.Write(bz)
	buf = hash.Sum(nil)

	encoded := hex.EncodeToString(buf)
	if len(encoded) > 32 {
		encoded = encoded[:32]
	}

	return encoded
}
