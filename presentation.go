package sdjwt

import "strings"

// orderedDisclosureMap is a digest -> Disclosure index that preserves
// insertion order on iteration and on removal of the remaining entries.
// No repository in the example pack vendors a general-purpose ordered-map
// library (see DESIGN.md), so this is the minimal structure the
// PresentationBuilder needs for deterministic output.
type orderedDisclosureMap struct {
	order []string
	data  map[string]Disclosure
}

func newOrderedDisclosureMap() *orderedDisclosureMap {
	return &orderedDisclosureMap{data: make(map[string]Disclosure)}
}

func (m *orderedDisclosureMap) set(digest string, d Disclosure) {
	if _, exists := m.data[digest]; !exists {
		m.order = append(m.order, digest)
	}
	m.data[digest] = d
}

func (m *orderedDisclosureMap) get(digest string) (Disclosure, bool) {
	d, ok := m.data[digest]
	return d, ok
}

func (m *orderedDisclosureMap) contains(digest string) bool {
	_, ok := m.data[digest]
	return ok
}

func (m *orderedDisclosureMap) remove(digest string) (Disclosure, bool) {
	d, ok := m.data[digest]
	if !ok {
		return Disclosure{}, false
	}
	delete(m.data, digest)
	for i, k := range m.order {
		if k == digest {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return d, true
}

func (m *orderedDisclosureMap) values() []Disclosure {
	out := make([]Disclosure, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.data[k])
	}
	return out
}

// PresentationBuilder consumes an SdJwt holding every disclosure and
// removes the ones covering paths the holder wants to keep concealed,
// including every disclosure transitively reachable from a concealed
// claim's value. The issuer's signature is untouched; this is purely a
// pruning of the disclosures list.
type PresentationBuilder struct {
	sdJwt               *SdJwt
	disclosures         *orderedDisclosureMap
	removedDisclosures  []Disclosure
	object              map[string]any
}

func newPresentationBuilder(sdJwt *SdJwt, hasher Hasher) (*PresentationBuilder, error) {
	requiredAlg, present := sdJwt.jwt.claims[sdAlgKey].(string)
	if !present {
		requiredAlg = ShaAlgName
	}
	if requiredAlg != hasher.AlgName() {
		return nil, invalidHasher("hasher \"" + hasher.AlgName() + "\" was provided, but \"" + requiredAlg + "\" is required")
	}

	disclosures := newOrderedDisclosureMap()
	for _, d := range sdJwt.disclosures {
		disclosures.set(EncodedDigest(hasher, d.Text()), d)
	}

	object, err := deepCopyJSONObject(sdJwt.jwt.claims)
	if err != nil {
		return nil, err
	}
	sdArr, _ := object[digestsKey].([]any)
	if sdArr == nil {
		sdArr = []any{}
	}
	object[digestsKey] = sdArr

	return &PresentationBuilder{
		sdJwt: &SdJwt{
			jwt:           sdJwt.jwt,
			disclosures:   nil,
			keyBindingJwt: sdJwt.keyBindingJwt,
		},
		disclosures: disclosures,
		object:      object,
	}, nil
}

// Conceal removes the disclosure for the property at path, along with
// every disclosure transitively reachable from that property's value. path
// is a slash-separated list of segments (a leading slash is optional);
// numeric segments address array indices.
func (b *PresentationBuilder) Conceal(path string) error {
	segments := splitPresentationPath(path)
	if len(segments) == 0 {
		return invalidPath("path must not be empty")
	}

	digests, err := concealTraverse(b.object, segments, b.disclosures)
	if err != nil {
		return err
	}

	for _, digest := range digests {
		if d, ok := b.disclosures.remove(digest); ok {
			b.removedDisclosures = append(b.removedDisclosures, d)
		}
	}
	return nil
}

func splitPresentationPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// AttachKeyBindingJwt attaches kb to this presentation.
func (b *PresentationBuilder) AttachKeyBindingJwt(kb *KeyBindingJwt) *PresentationBuilder {
	b.sdJwt.keyBindingJwt = kb
	return b
}

// Finish returns the resulting SdJwt together with every disclosure that
// was removed by Conceal. Returns MissingKeyBindingJwt if the claims
// require key binding (cnf) but none was attached.
func (b *PresentationBuilder) Finish() (*SdJwt, []Disclosure, error) {
	if _, required := b.sdJwt.RequiredKeyBinding(); required && b.sdJwt.keyBindingJwt == nil {
		return nil, nil, missingKeyBindingJwt("claims require key binding but none was attached")
	}

	claims := make(map[string]any, len(b.object))
	for k, v := range b.object {
		claims[k] = v
	}
	if sdArr, ok := claims[digestsKey].([]any); ok && len(sdArr) == 0 {
		delete(claims, digestsKey)
	}

	result := &SdJwt{
		jwt: &Jwt{
			raw:       b.sdJwt.jwt.raw,
			header:    b.sdJwt.jwt.header,
			signature: b.sdJwt.jwt.signature,
			claims:    claims,
		},
		disclosures:   b.disclosures.values(),
		keyBindingJwt: b.sdJwt.keyBindingJwt,
	}
	return result, b.removedDisclosures, nil
}

// concealTraverse walks node through segments, mixing visible (literal
// object property or array element) and concealed (_sd digest / {"...":}
// placeholder) steps uniformly, and returns the digests to drop once the
// target is reached: the target's own digest plus every digest reachable
// from its disclosed value.
func concealTraverse(node any, segments []string, disclosures *orderedDisclosureMap) ([]string, error) {
	key, rest := segments[0], segments[1:]
	hasNext := len(rest) > 0

	switch v := node.(type) {
	case map[string]any:
		if hasNext {
			next, ok := v[key]
			if !ok {
				digest, found := findDisclosureByName(v, key, disclosures)
				if !found {
					return nil, invalidPath("the referenced element doesn't exist or is not concealable")
				}
				d, _ := disclosures.get(digest)
				next = d.ClaimValue()
			}
			return concealTraverse(next, rest, disclosures)
		}
		digest, found := findDisclosureByName(v, key, disclosures)
		if !found {
			return nil, invalidPath("the referenced element doesn't exist or is not concealable")
		}
		return appendTargetDigest(digest, disclosures), nil

	case []any:
		idx, ok := parseArrayIndexLoose(key, len(v))
		if !ok {
			return nil, invalidPath("array index is out of bounds")
		}
		if hasNext {
			next := v[idx]
			if digest, ok := asArrayPlaceholder(next); ok {
				d, found := disclosures.get(digest)
				if !found {
					return nil, invalidPath("the referenced element doesn't exist or is not concealable")
				}
				next = d.ClaimValue()
			}
			return concealTraverse(next, rest, disclosures)
		}
		digest, ok := asArrayPlaceholder(v[idx])
		if !ok || !disclosures.contains(digest) {
			return nil, invalidPath("the referenced element doesn't exist or is not concealable")
		}
		return appendTargetDigest(digest, disclosures), nil

	default:
		return nil, invalidPath("path does not reference a concealable element")
	}
}

func appendTargetDigest(digest string, disclosures *orderedDisclosureMap) []string {
	d, _ := disclosures.get(digest)
	subs := collectSubDisclosures(d.ClaimValue(), disclosures)
	return append(subs, digest)
}

// findDisclosureByName searches obj's _sd array for the digest whose
// disclosure has claim name == name.
func findDisclosureByName(obj map[string]any, name string, disclosures *orderedDisclosureMap) (string, bool) {
	sdRaw, ok := obj[digestsKey]
	if !ok {
		return "", false
	}
	arr, ok := sdRaw.([]any)
	if !ok {
		return "", false
	}
	for _, item := range arr {
		digest, ok := item.(string)
		if !ok {
			continue
		}
		d, found := disclosures.get(digest)
		if found && d.ClaimName() != nil && *d.ClaimName() == name {
			return digest, true
		}
	}
	return "", false
}

// collectSubDisclosures recursively scans value for every _sd entry and
// {"...": digest} placeholder whose digest is a known disclosure,
// continuing into the values those digests point to. This is what makes
// concealing a parent claim also drop every disclosure nested inside it.
func collectSubDisclosures(value any, disclosures *orderedDisclosureMap) []string {
	var out []string
	switch v := value.(type) {
	case map[string]any:
		if sdRaw, ok := v[digestsKey]; ok {
			if arr, ok := sdRaw.([]any); ok {
				for _, item := range arr {
					if digest, ok := item.(string); ok && disclosures.contains(digest) {
						out = append(out, digest)
						if d, found := disclosures.get(digest); found {
							out = append(out, collectSubDisclosures(d.ClaimValue(), disclosures)...)
						}
					}
				}
			}
		}
		for k, vv := range v {
			if k == digestsKey {
				continue
			}
			out = append(out, collectSubDisclosures(vv, disclosures)...)
		}
	case []any:
		for _, item := range v {
			if digest, ok := asArrayPlaceholder(item); ok {
				if disclosures.contains(digest) {
					out = append(out, digest)
					if d, found := disclosures.get(digest); found {
						out = append(out, collectSubDisclosures(d.ClaimValue(), disclosures)...)
					}
				}
				continue
			}
			out = append(out, collectSubDisclosures(item, disclosures)...)
		}
	}
	return out
}
