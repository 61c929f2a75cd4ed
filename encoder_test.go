package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObject() map[string]any {
	return map[string]any{
		"id": "did:value",
		"claim1": map[string]any{
			"abc": true,
		},
		"claim2": []any{"arr-value1", "arr-value2"},
	}
}

func TestEncoderConcealAndAddDecoys(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)

	_, err = enc.Conceal("/claim1/abc")
	require.NoError(t, err)
	_, err = enc.Conceal("/id")
	require.NoError(t, err)
	require.NoError(t, enc.AddDecoys("", 10))
	require.NoError(t, enc.AddDecoys("/claim2", 10))

	_, hasID := enc.Object()["id"]
	assert.False(t, hasID)

	sd, ok := enc.Object()[digestsKey].([]any)
	require.True(t, ok)
	assert.Len(t, sd, 11)

	claim2, ok := enc.Object()["claim2"].([]any)
	require.True(t, ok)
	assert.Len(t, claim2, 12)
}

func TestEncoderConcealPathWithoutLeadingSlashIsInvalid(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)
	_, err = enc.Conceal("/claim1/abc")
	require.NoError(t, err)

	_, err = enc.Conceal("claim2/2")
	var sdErr *Error
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, KindInvalidPath, sdErr.Kind)
}

func TestEncoderConcealMissingPathIsInvalid(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)

	_, err = enc.Conceal("/claim12")
	var sdErr *Error
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, KindInvalidPath, sdErr.Kind)

	_, err = enc.Conceal("/claim12/0")
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, KindInvalidPath, sdErr.Kind)
}

func TestEncoderConcealArrayIndexOutOfBounds(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)

	_, err = enc.Conceal("/claim2/2")
	var sdErr *Error
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, KindIndexOutOfBounds, sdErr.Kind)
	assert.Equal(t, 2, sdErr.Index)
}

func TestEncoderFromSerializable(t *testing.T) {
	type testStruct struct {
		ID     string   `json:"id"`
		Claim2 []string `json:"claim2"`
	}
	value := testStruct{ID: "did:value", Claim2: []string{"arr-value1", "arr-value2"}}

	enc, err := NewEncoderFromSerializable(value)
	require.NoError(t, err)

	_, err = enc.Conceal("/id")
	require.NoError(t, err)
	require.NoError(t, enc.AddDecoys("", 10))
	require.NoError(t, enc.AddDecoys("/claim2", 10))

	_, hasID := enc.Object()["id"]
	assert.False(t, hasID)
	assert.Len(t, enc.Object()[digestsKey].([]any), 11)
	assert.Len(t, enc.Object()["claim2"].([]any), 12)
}

func TestEncoderAddSDAlgProperty(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)
	enc.AddSDAlgProperty()
	assert.Equal(t, "sha-256", enc.Object()[sdAlgKey])
}

func TestEncoderRejectsNilObject(t *testing.T) {
	_, err := NewEncoder(nil)
	var sdErr *Error
	require.ErrorAs(t, err, &sdErr)
	assert.Equal(t, KindDataTypeMismatch, sdErr.Kind)
}

func TestEncoderConcealArrayElement(t *testing.T) {
	enc, err := NewEncoder(testObject())
	require.NoError(t, err)

	disclosure, err := enc.Conceal("/claim2/0")
	require.NoError(t, err)
	assert.Nil(t, disclosure.ClaimName())
	assert.Equal(t, "arr-value1", disclosure.ClaimValue())

	claim2 := enc.Object()["claim2"].([]any)
	placeholder, ok := claim2[0].(map[string]any)
	require.True(t, ok)
	_, hasDigest := placeholder[arrayDigestKey]
	assert.True(t, hasDigest)
}
