package sdjwt

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// defaultSaltSize is the default number of random bytes used for a salt,
// base64url-encoded into the resulting string.
const defaultSaltSize = 30

// randomBase64 draws n cryptographically secure random bytes and returns
// their base64url (unpadded) encoding. Used for salts, decoy claim names,
// and decoy claim values — spec.md §5 requires a CSPRNG for all of these.
func randomBase64(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", wrapUnspecified(err, "error generating random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// randomIntInRange returns a cryptographically secure random integer in
// [min, max], inclusive.
func randomIntInRange(min, max int) (int, error) {
	span := int64(max-min) + 1
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, wrapUnspecified(err, "error generating random integer")
	}
	return min + int(n.Int64()), nil
}
