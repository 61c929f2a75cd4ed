package sdjwt

import "encoding/json"

// digestsKey is the reserved property holding an object's concealable
// digests. arrayDigestKey is the sole key of the single-key object that
// stands in for a concealed array element.
const (
	digestsKey     = "_sd"
	arrayDigestKey = "..."
	sdAlgKey       = "_sd_alg"
)

// Encoder owns a mutable JSON object and transforms it in place by
// replacing values at arbitrary paths with salted-hash commitments. It
// mirrors SdObjectEncoder from original_source/src/encoder.rs.
type Encoder struct {
	object   map[string]any
	saltSize int
	hasher   Hasher
}

// NewEncoder creates an Encoder over object using the default hasher
// (SHA-256) and the default salt size (30 bytes).
func NewEncoder(object map[string]any) (*Encoder, error) {
	return NewEncoderWithHasher(object, NewSha256Hasher())
}

// NewEncoderWithHasher creates an Encoder over object using a custom
// Hasher and the default salt size.
func NewEncoderWithHasher(object map[string]any, hasher Hasher) (*Encoder, error) {
	return NewEncoderWithHasherAndSaltSize(object, hasher, defaultSaltSize)
}

// NewEncoderWithHasherAndSaltSize creates an Encoder over object using a
// custom Hasher and salt size. object must be non-nil; the zero value
// map[string]any(nil) is rejected the same as any other non-object.
func NewEncoderWithHasherAndSaltSize(object map[string]any, hasher Hasher, saltSize int) (*Encoder, error) {
	if object == nil {
		return nil, dataTypeMismatch("argument object must be a JSON object")
	}
	return &Encoder{object: object, saltSize: saltSize, hasher: hasher}, nil
}

// NewEncoderFromSerializable marshals v to JSON and builds an Encoder over
// the result. Marshaling failure is a DeserializationError; a result that
// doesn't marshal/unmarshal into a JSON object is a DataTypeMismatch.
func NewEncoderFromSerializable(v any) (*Encoder, error) {
	return NewEncoderFromSerializableWithHasher(v, NewSha256Hasher())
}

// NewEncoderFromSerializableWithHasher is NewEncoderFromSerializable with a
// custom Hasher.
func NewEncoderFromSerializableWithHasher(v any, hasher Hasher) (*Encoder, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, wrapDeserializationError(err, "value could not be serialized to JSON")
	}
	var object map[string]any
	if err := json.Unmarshal(b, &object); err != nil {
		return nil, dataTypeMismatch("argument object must be a JSON object")
	}
	return NewEncoderWithHasher(object, hasher)
}

// Conceal substitutes the value at path with the digest of its disclosure.
// path is an RFC 6901 JSON Pointer rooted at the encoder's object.
//
// Errors: InvalidPath for a malformed pointer, a missing parent, or an
// intermediate segment through a non-container; DataTypeMismatch if the
// parent's existing _sd property is not an array; IndexOutOfBounds if the
// parent is an array and the final index is past its length; Unspecified
// if the parent is neither an object nor an array.
func (e *Encoder) Conceal(path string) (*Disclosure, error) {
	segments, err := parsePointer(path)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, invalidPath("path does not contain any values")
	}

	salt, err := randomBase64(e.saltSize)
	if err != nil {
		return nil, err
	}

	parentSegments, elementKey := segments[:len(segments)-1], segments[len(segments)-1]
	parent, err := resolveContainer(e.object, parentSegments)
	if err != nil {
		return nil, err
	}

	switch p := parent.(type) {
	case map[string]any:
		value, ok := p[elementKey]
		if !ok {
			return nil, invalidPath(elementKey + " does not exist")
		}
		if existing, ok := p[digestsKey]; ok {
			if _, isArray := existing.([]any); !isArray {
				return nil, dataTypeMismatch("existing _sd property is not an array")
			}
		}

		disclosure, err := NewObjectDisclosure(salt, elementKey, value)
		if err != nil {
			return nil, err
		}
		delete(p, elementKey)
		digest := EncodedDigest(e.hasher, disclosure.Text())
		if err := addDigestToObject(p, digest); err != nil {
			return nil, err
		}
		return disclosure, nil

	case []any:
		idx, ok := parseArrayIndexStrict(elementKey)
		if !ok {
			return nil, invalidPath(elementKey + " is not a valid array index")
		}
		if idx >= len(p) {
			return nil, indexOutOfBounds(idx, "array index out of bounds")
		}

		disclosure, err := NewArrayDisclosure(salt, p[idx])
		if err != nil {
			return nil, err
		}
		digest := EncodedDigest(e.hasher, disclosure.Text())
		p[idx] = map[string]any{arrayDigestKey: digest}
		return disclosure, nil

	default:
		return nil, unspecified("parent of element can only be an object or an array")
	}
}

// AddSDAlgProperty inserts or overwrites the top-level _sd_alg property
// with the hasher's algorithm name.
func (e *Encoder) AddSDAlgProperty() {
	e.object[sdAlgKey] = e.hasher.AlgName()
}

// AddDecoys inserts n indistinguishable decoy digests at path. Use path =
// "" to target the top-level object.
func (e *Encoder) AddDecoys(path string, n int) error {
	for i := 0; i < n; i++ {
		if err := e.addDecoy(path); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) addDecoy(path string) error {
	segments, err := parsePointer(path)
	if err != nil {
		return err
	}
	target, err := resolveContainer(e.object, segments)
	if err != nil {
		return err
	}

	switch t := target.(type) {
	case map[string]any:
		_, digest, err := e.generateDecoy(false)
		if err != nil {
			return err
		}
		return addDigestToObject(t, digest)

	case []any:
		_, digest, err := e.generateDecoy(true)
		if err != nil {
			return err
		}
		grown := append(t, map[string]any{arrayDigestKey: digest})
		return setAtPath(e.object, segments, grown)

	default:
		return invalidPath("path is neither an object nor an array")
	}
}

// generateDecoy builds a random disclosure for a decoy digest. The
// disclosure itself is never handed to a holder; only its digest is
// inserted into the object.
func (e *Encoder) generateDecoy(arrayEntry bool) (*Disclosure, string, error) {
	salt, err := randomBase64(e.saltSize)
	if err != nil {
		return nil, "", err
	}
	valueLen, err := randomIntInRange(20, 100)
	if err != nil {
		return nil, "", err
	}
	value, err := randomBase64(valueLen)
	if err != nil {
		return nil, "", err
	}

	var disclosure *Disclosure
	if arrayEntry {
		disclosure, err = NewArrayDisclosure(salt, value)
	} else {
		nameLen, nerr := randomIntInRange(4, 10)
		if nerr != nil {
			return nil, "", nerr
		}
		name, nerr := randomBase64(nameLen)
		if nerr != nil {
			return nil, "", nerr
		}
		disclosure, err = NewObjectDisclosure(salt, name, value)
	}
	if err != nil {
		return nil, "", err
	}

	return disclosure, EncodedDigest(e.hasher, disclosure.Text()), nil
}

// addDigestToObject appends digest to object's _sd array, creating it if
// absent. An existing non-array _sd is a DataTypeMismatch.
func addDigestToObject(object map[string]any, digest string) error {
	existing, ok := object[digestsKey]
	if !ok {
		object[digestsKey] = []any{digest}
		return nil
	}
	arr, ok := existing.([]any)
	if !ok {
		return dataTypeMismatch("existing _sd property is not an array")
	}
	object[digestsKey] = append(arr, digest)
	return nil
}

// setAtPath writes value into root at the container addressed by segments,
// used when an array grows via append and the resulting slice header must
// be written back into its parent.
func setAtPath(root map[string]any, segments []string, value any) error {
	parent, err := resolveContainer(root, segments[:len(segments)-1])
	if err != nil {
		return err
	}
	last := segments[len(segments)-1]
	switch p := parent.(type) {
	case map[string]any:
		p[last] = value
		return nil
	case []any:
		idx, ok := parseArrayIndexLoose(last, len(p))
		if !ok {
			return invalidPath(last + " is not a valid in-bounds array index")
		}
		p[idx] = value
		return nil
	default:
		return invalidPath("path does not reference a container")
	}
}

// TryToString serializes the current state of the object.
func (e *Encoder) TryToString() (string, error) {
	b, err := json.Marshal(e.object)
	if err != nil {
		return "", wrapUnspecified(err, "error while serializing internal object")
	}
	return string(b), nil
}

// Object returns the encoder's internal object for inspection. Callers
// must not mutate the returned map; use Conceal/AddDecoys/AddSDAlgProperty
// instead.
func (e *Encoder) Object() map[string]any {
	return e.object
}

// SaltSize returns the configured salt length in bytes.
func (e *Encoder) SaltSize() int {
	return e.saltSize
}
