package sdjwt

import "encoding/json"

// deepCopyJSONObject round-trips m through the JSON encoder/decoder to
// produce an independent copy, so decoding never mutates the SdJwt it was
// called on.
func deepCopyJSONObject(m map[string]any) (map[string]any, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, wrapUnspecified(err, "error copying claims object")
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, wrapUnspecified(err, "error copying claims object")
	}
	return out, nil
}

// DecodeDisclosedObject reconstructs the fully disclosed JSON object from
// claims and disclosures, per spec.md §4.4/§4.6: every _sd digest with a
// matching disclosure is replaced by claimName -> claimValue; every
// {"...": digest} array placeholder with a matching disclosure is replaced
// by claimValue. Digests without a matching disclosure (decoys or
// undisclosed claims) are silently dropped. _sd and _sd_alg never appear
// in the result.
func DecodeDisclosedObject(claims map[string]any, hasher Hasher, disclosures []Disclosure) (map[string]any, error) {
	digestMap := make(map[string]Disclosure, len(disclosures))
	for _, d := range disclosures {
		b, err := json.Marshal(d.claimValue)
		if err != nil {
			return nil, wrapUnspecified(err, "error copying disclosure value")
		}
		var value any
		if err := json.Unmarshal(b, &value); err != nil {
			return nil, wrapUnspecified(err, "error copying disclosure value")
		}
		d.claimValue = value
		digestMap[EncodedDigest(hasher, d.Text())] = d
	}

	cloned, err := deepCopyJSONObject(claims)
	if err != nil {
		return nil, err
	}
	return decodeObject(cloned, digestMap)
}

func decodeValue(v any, digestMap map[string]Disclosure) (any, error) {
	switch vv := v.(type) {
	case map[string]any:
		return decodeObject(vv, digestMap)
	case []any:
		return decodeArray(vv, digestMap)
	default:
		return v, nil
	}
}

func decodeObject(obj map[string]any, digestMap map[string]Disclosure) (map[string]any, error) {
	if sdRaw, ok := obj[digestsKey]; ok {
		arr, ok := sdRaw.([]any)
		if !ok {
			return nil, dataTypeMismatch("_sd property is not an array")
		}
		for _, item := range arr {
			digest, ok := item.(string)
			if !ok {
				continue
			}
			disclosure, found := digestMap[digest]
			if !found {
				continue
			}
			if disclosure.ClaimName() == nil {
				return nil, unspecified("disclosure referenced from _sd has no claim name")
			}
			obj[*disclosure.ClaimName()] = disclosure.ClaimValue()
		}
		delete(obj, digestsKey)
	}
	delete(obj, sdAlgKey)

	for k, v := range obj {
		decoded, err := decodeValue(v, digestMap)
		if err != nil {
			return nil, err
		}
		obj[k] = decoded
	}
	return obj, nil
}

func decodeArray(arr []any, digestMap map[string]Disclosure) ([]any, error) {
	result := make([]any, 0, len(arr))
	for _, item := range arr {
		if digest, ok := asArrayPlaceholder(item); ok {
			disclosure, found := digestMap[digest]
			if !found {
				continue
			}
			decoded, err := decodeValue(disclosure.ClaimValue(), digestMap)
			if err != nil {
				return nil, err
			}
			result = append(result, decoded)
			continue
		}

		decoded, err := decodeValue(item, digestMap)
		if err != nil {
			return nil, err
		}
		result = append(result, decoded)
	}
	return result, nil
}

// asArrayPlaceholder reports whether v is a {"...": digest} single-key
// array placeholder and returns the digest string if so.
func asArrayPlaceholder(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	raw, ok := m[arrayDigestKey]
	if !ok {
		return "", false
	}
	digest, ok := raw.(string)
	return digest, ok
}
