package sdjwt

import (
	"encoding/base64"
	"encoding/json"
)

// Disclosure is the preimage of a digest: a salt, an optional claim name,
// and the claim value, in the canonical base64url-encoded JSON array form
// that is the exact input to the hasher. The canonical text is computed
// once and memoized, never reconstructed from the parsed fields, so the
// bytes that get hashed are always exactly the bytes that were produced or
// parsed.
type Disclosure struct {
	salt       string
	claimName  *string
	claimValue any
	text       string
}

// NewObjectDisclosure builds the disclosure for a concealed object
// property: [salt, claimName, value].
func NewObjectDisclosure(salt, claimName string, value any) (*Disclosure, error) {
	text, err := encodeDisclosure([]any{salt, claimName, value})
	if err != nil {
		return nil, err
	}
	name := claimName
	return &Disclosure{salt: salt, claimName: &name, claimValue: value, text: text}, nil
}

// NewArrayDisclosure builds the disclosure for a concealed array element:
// [salt, value].
func NewArrayDisclosure(salt string, value any) (*Disclosure, error) {
	text, err := encodeDisclosure([]any{salt, value})
	if err != nil {
		return nil, err
	}
	return &Disclosure{salt: salt, claimValue: value, text: text}, nil
}

func encodeDisclosure(array []any) (string, error) {
	b, err := json.Marshal(array)
	if err != nil {
		return "", wrapUnspecified(err, "error while serializing disclosure array")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ParseDisclosure decodes the base64url text of a disclosure as it appears
// in a compact SD-JWT. The decoded value MUST be a JSON array of length 2
// (array-element disclosure) or 3 (object-property disclosure); any other
// shape is a DeserializationError.
func ParseDisclosure(text string) (*Disclosure, error) {
	raw, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, wrapDeserializationError(err, "disclosure is not valid base64url")
	}

	var array []any
	if err := json.Unmarshal(raw, &array); err != nil {
		return nil, wrapDeserializationError(err, "disclosure is not a valid JSON array")
	}

	switch len(array) {
	case 2:
		salt, ok := array[0].(string)
		if !ok {
			return nil, deserializationError("disclosure salt must be a string")
		}
		return &Disclosure{salt: salt, claimValue: array[1], text: text}, nil
	case 3:
		salt, ok := array[0].(string)
		if !ok {
			return nil, deserializationError("disclosure salt must be a string")
		}
		name, ok := array[1].(string)
		if !ok {
			return nil, deserializationError("disclosure claim name must be a string")
		}
		return &Disclosure{salt: salt, claimName: &name, claimValue: array[2], text: text}, nil
	default:
		return nil, deserializationError("disclosure array must have 2 or 3 elements")
	}
}

// Salt returns the disclosure's salt.
func (d *Disclosure) Salt() string {
	return d.salt
}

// ClaimName returns the disclosed property's name, or nil for an
// array-element disclosure.
func (d *Disclosure) ClaimName() *string {
	return d.claimName
}

// ClaimValue returns the disclosed value.
func (d *Disclosure) ClaimValue() any {
	return d.claimValue
}

// Text returns the canonical base64url-encoded disclosure, exactly as
// hashed by a Hasher and exactly as it appears in a compact SD-JWT.
func (d *Disclosure) Text() string {
	return d.text
}
