package sdjwt

import "strings"

// SdJwt is an immutable value holding a parsed JWT's claims, its ordered
// disclosures, and an optional key-binding JWT. It round-trips the compact
// `<JWT>~<Disclosure>~...~<Disclosure>~<KB-JWT?>` serialization described
// in spec.md §6.
type SdJwt struct {
	jwt           *Jwt
	disclosures   []Disclosure
	keyBindingJwt *KeyBindingJwt
}

// Parse splits a compact SD-JWT string into its JWT, disclosures, and
// optional key-binding JWT. Returns DeserializationError if the string has
// fewer than two '~'-separated segments or any segment fails to parse.
func Parse(token string) (*SdJwt, error) {
	segments := strings.Split(token, "~")
	if len(segments) < 2 {
		return nil, deserializationError("sd-jwt must contain at least a JWT and a trailing separator")
	}

	jwt, err := ParseJwtEnvelope(segments[0])
	if err != nil {
		return nil, err
	}

	middle := segments[1 : len(segments)-1]
	disclosures := make([]Disclosure, 0, len(middle))
	seen := make(map[string]struct{}, len(middle))
	for _, seg := range middle {
		if _, dup := seen[seg]; dup {
			return nil, deserializationError("duplicate disclosure found")
		}
		seen[seg] = struct{}{}

		d, err := ParseDisclosure(seg)
		if err != nil {
			return nil, err
		}
		disclosures = append(disclosures, *d)
	}

	var kb *KeyBindingJwt
	last := segments[len(segments)-1]
	if last != "" {
		kb, err = ParseJwtEnvelope(last)
		if err != nil {
			return nil, err
		}
	}

	return &SdJwt{jwt: jwt, disclosures: disclosures, keyBindingJwt: kb}, nil
}

// Header returns the issuer JWT's header.
func (s *SdJwt) Header() map[string]any {
	return s.jwt.Header()
}

// Claims returns the issuer JWT's claims, including _sd, _sd_alg, and cnf
// if present.
func (s *SdJwt) Claims() map[string]any {
	return s.jwt.claims
}

// ClaimsMut returns a mutable view of the issuer JWT's claims.
//
// Warning: modifying the returned map invalidates the issuer's signature.
// This package never re-signs; callers who mutate claims are responsible
// for producing a new signed JWT through their own signing collaborator.
func (s *SdJwt) ClaimsMut() map[string]any {
	return s.jwt.claims
}

// Disclosures returns the SD-JWT's disclosures in parsed order.
func (s *SdJwt) Disclosures() []Disclosure {
	return s.disclosures
}

// KeyBindingJwt returns the attached key-binding JWT, or nil if absent.
func (s *SdJwt) KeyBindingJwt() *KeyBindingJwt {
	return s.keyBindingJwt
}

// RequiredKeyBinding returns the top-level cnf claim, if present.
func (s *SdJwt) RequiredKeyBinding() (map[string]any, bool) {
	raw, ok := s.jwt.claims["cnf"]
	if !ok {
		return nil, false
	}
	cnf, ok := raw.(map[string]any)
	return cnf, ok
}

// Presentation serializes this SdJwt into its compact form. A trailing '~'
// is always present when there is no key-binding JWT.
func (s *SdJwt) Presentation() string {
	var b strings.Builder
	b.WriteString(s.jwt.String())
	b.WriteByte('~')
	for _, d := range s.disclosures {
		b.WriteString(d.Text())
		b.WriteByte('~')
	}
	if s.keyBindingJwt != nil {
		b.WriteString(s.keyBindingJwt.String())
	}
	return b.String()
}

// String is an alias for Presentation, so an SdJwt satisfies fmt.Stringer.
func (s *SdJwt) String() string {
	return s.Presentation()
}

// IntoPresentation prepares this SdJwt for selective disclosure, returning
// a PresentationBuilder. Returns InvalidHasher if hasher's algorithm
// doesn't match the claims' _sd_alg (or "sha-256" if _sd_alg is absent).
func (s *SdJwt) IntoPresentation(hasher Hasher) (*PresentationBuilder, error) {
	return newPresentationBuilder(s, hasher)
}

// IntoDisclosedObject returns the JSON object obtained by substituting
// every disclosed digest with its claim name and value. _sd and _sd_alg
// never appear in the result; digests without a matching disclosure are
// silently dropped.
func (s *SdJwt) IntoDisclosedObject(hasher Hasher) (map[string]any, error) {
	return DecodeDisclosedObject(s.jwt.claims, hasher, s.disclosures)
}
