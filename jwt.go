package sdjwt

import (
	jwtgo "github.com/golang-jwt/jwt/v5"
)

// Jwt is an opaque, unverified JSON Web Token envelope. The core never
// checks or produces signatures; it only reads header and claims off of an
// already-issued token and carries the signature bytes through untouched.
// Both the issuer-signed JWT and an attached key-binding JWT use this type.
type Jwt struct {
	raw       string
	header    map[string]any
	claims    map[string]any
	signature string
}

// KeyBindingJwt is the same opaque envelope shape as Jwt, named separately
// to match the SD-JWT vocabulary (spec.md GLOSSARY).
type KeyBindingJwt = Jwt

// ParseJwtEnvelope parses a compact JWT's header and claims without
// verifying its signature. Returns DeserializationError if raw is not a
// well-formed three-part compact JWT.
func ParseJwtEnvelope(raw string) (*Jwt, error) {
	claims := jwtgo.MapClaims{}
	token, parts, err := jwtgo.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return nil, wrapDeserializationError(err, "token is not a valid JWT")
	}
	if len(parts) != 3 {
		return nil, deserializationError("token is not a valid JWT")
	}
	return &Jwt{
		raw:       raw,
		header:    token.Header,
		claims:    map[string]any(claims),
		signature: parts[2],
	}, nil
}

// Header returns the JWT's header claims.
func (j *Jwt) Header() map[string]any {
	return j.header
}

// Claims returns the JWT's claims.
func (j *Jwt) Claims() map[string]any {
	return j.claims
}

// Signature returns the compact, base64url-encoded signature segment.
func (j *Jwt) Signature() string {
	return j.signature
}

// String returns the exact compact string this envelope was parsed from.
func (j *Jwt) String() string {
	return j.raw
}
