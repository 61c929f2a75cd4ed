package sdjwt

// BuildKeyBindingClaims assembles the claims object for a key-binding JWT:
// aud, nonce, iat, and sd_hash, where sd_hash binds the claims to a
// specific disclosure set by hashing the presentation's compact
// serialization (including its trailing '~'). The caller is responsible
// for signing the result; this helper never touches a signing key.
func BuildKeyBindingClaims(presentation, audience, nonce string, issuedAt int64, hasher Hasher) map[string]any {
	return map[string]any{
		"aud":     audience,
		"nonce":   nonce,
		"iat":     issuedAt,
		"sd_hash": EncodedDigest(hasher, presentation),
	}
}
