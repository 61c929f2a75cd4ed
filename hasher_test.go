package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Values taken from https://www.ietf.org/archive/id/draft-ietf-oauth-selective-disclosure-jwt-07.html#name-disclosures
func TestSha256HasherEncodedDigest(t *testing.T) {
	hasher := NewSha256Hasher()

	tests := []struct {
		name       string
		disclosure string
		want       string
	}{
		{
			name:       "family_name",
			disclosure: "WyI2cU1RdlJMNWhhaiIsICJmYW1pbHlfbmFtZSIsICJNw7ZiaXVzIl0",
			want:       "uutlBuYeMDyjLLTpf6Jxi7yNkEF35jdyWMn9U7b_RYY",
		},
		{
			name:       "email",
			disclosure: "WyJlSThaV205UW5LUHBOUGVOZW5IZGhRIiwgImVtYWlsIiwgIlwidW51c3VhbCBlbWFpbCBhZGRyZXNzXCJAZXhhbXBsZS5qcCJd",
			want:       "Kuet1yAa0HIQvYnOVd59hcViO9Ug6J2kSfqYRBeowvE",
		},
		{
			name:       "nationalities_element",
			disclosure: "WyJsa2x4RjVqTVlsR1RQVW92TU5JdkNBIiwgIkZSIl0",
			want:       "w0I8EKcdCtUPkGCNUrfwVp2xEgNjtoIDlOxc9-PlOhs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodedDigest(hasher, tt.disclosure))
		})
	}
}

func TestSha256HasherAlgName(t *testing.T) {
	assert.Equal(t, "sha-256", NewSha256Hasher().AlgName())
}
