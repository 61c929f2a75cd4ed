package sdjwt

import (
	"crypto/sha256"
	"encoding/base64"
)

// ShaAlgName is the IANA Hash Name String for the built-in SHA-256 hasher.
const ShaAlgName = "sha-256"

// Hasher produces the digests a disclosure is committed to inside an _sd
// array or a {"...": digest} array placeholder. Implementations MUST be
// pure and deterministic: the same input always yields the same digest.
//
// Only algorithms listed in the IANA "Named Information Hash Algorithm"
// registry are valid AlgName values.
type Hasher interface {
	// Digest returns the fixed-size raw digest of input.
	Digest(input []byte) []byte
	// AlgName returns the algorithm's IANA Hash Name String, e.g. "sha-256".
	AlgName() string
}

// EncodedDigest returns the base64url, unpadded encoding of h.Digest applied
// to the UTF-8 bytes of disclosure. Go interfaces have no default method
// bodies, so this is provided as a free function instead of a Hasher method.
func EncodedDigest(h Hasher, disclosure string) string {
	return base64.RawURLEncoding.EncodeToString(h.Digest([]byte(disclosure)))
}

// Sha256Hasher is the default Hasher, using SHA-256.
type Sha256Hasher struct{}

// NewSha256Hasher returns a ready-to-use Sha256Hasher.
func NewSha256Hasher() Sha256Hasher {
	return Sha256Hasher{}
}

func (Sha256Hasher) Digest(input []byte) []byte {
	sum := sha256.Sum256(input)
	return sum[:]
}

func (Sha256Hasher) AlgName() string {
	return ShaAlgName
}
