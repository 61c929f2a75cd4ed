package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDisclosedObjectObjectProperty(t *testing.T) {
	hasher := NewSha256Hasher()
	d, err := NewObjectDisclosure("salt1", "given_name", "John")
	require.NoError(t, err)

	claims := map[string]any{
		"iss": "https://issuer.example.com",
		digestsKey: []any{
			EncodedDigest(hasher, d.Text()),
		},
		sdAlgKey: ShaAlgName,
	}

	out, err := DecodeDisclosedObject(claims, hasher, []Disclosure{*d})
	require.NoError(t, err)

	assert.Equal(t, "John", out["given_name"])
	assert.Equal(t, "https://issuer.example.com", out["iss"])
	_, hasSD := out[digestsKey]
	assert.False(t, hasSD)
	_, hasAlg := out[sdAlgKey]
	assert.False(t, hasAlg)
}

func TestDecodeDisclosedObjectArrayElement(t *testing.T) {
	hasher := NewSha256Hasher()
	d, err := NewArrayDisclosure("salt2", "DE")
	require.NoError(t, err)
	digest := EncodedDigest(hasher, d.Text())

	claims := map[string]any{
		"nationalities": []any{
			map[string]any{arrayDigestKey: digest},
			"US",
		},
	}

	out, err := DecodeDisclosedObject(claims, hasher, []Disclosure{*d})
	require.NoError(t, err)

	nationalities := out["nationalities"].([]any)
	require.Len(t, nationalities, 2)
	assert.Equal(t, "DE", nationalities[0])
	assert.Equal(t, "US", nationalities[1])
}

func TestDecodeDisclosedObjectDropsUnmatchedDigests(t *testing.T) {
	hasher := NewSha256Hasher()
	claims := map[string]any{
		digestsKey: []any{"decoyDigestWithNoMatchingDisclosure"},
	}

	out, err := DecodeDisclosedObject(claims, hasher, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeDisclosedObjectDoesNotMutateInput(t *testing.T) {
	hasher := NewSha256Hasher()
	d, err := NewObjectDisclosure("salt3", "age", 21)
	require.NoError(t, err)

	claims := map[string]any{
		digestsKey: []any{EncodedDigest(hasher, d.Text())},
	}

	_, err = DecodeDisclosedObject(claims, hasher, []Disclosure{*d})
	require.NoError(t, err)

	_, stillHasSD := claims[digestsKey]
	assert.True(t, stillHasSD, "decoding must not mutate the claims map it was given")
}
