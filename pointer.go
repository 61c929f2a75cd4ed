package sdjwt

import (
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// parsePointer tokenizes an RFC 6901 JSON Pointer into its unescaped path
// segments using the jsonpointer package, which owns the ~0/~1 escaping
// rules. An empty pointer parses to zero segments. A non-empty pointer that
// doesn't start with "/" is malformed per RFC 6901 and reported as
// InvalidPath rather than silently mis-tokenized.
func parsePointer(path string) ([]string, error) {
	if err := jsonpointer.Validate(path); err != nil {
		return nil, invalidPath(err.Error())
	}
	return []string(jsonpointer.Parse(path)), nil
}

// resolveContainer walks segments from root and returns the value found at
// the end of the path. root is always the encoder's backing object, a
// map[string]any. Every intermediate step must resolve to a container
// (object or array); any missing key, out-of-range index, or attempt to
// step into a primitive is reported as InvalidPath, per spec.md §4.3.1
// step 3 and the unified treatment of missing parents described in
// SPEC_FULL.md §4.3.
func resolveContainer(root map[string]any, segments []string) (any, error) {
	var current any = root
	for _, seg := range segments {
		switch c := current.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				return nil, invalidPath("path segment " + strconv.Quote(seg) + " does not exist")
			}
			current = next
		case []any:
			idx, ok := parseArrayIndexLoose(seg, len(c))
			if !ok {
				return nil, invalidPath("path segment " + strconv.Quote(seg) + " is not a valid in-bounds array index")
			}
			current = c[idx]
		default:
			return nil, invalidPath("path segment " + strconv.Quote(seg) + " references a non-container value")
		}
	}
	return current, nil
}

// parseArrayIndexStrict accepts only a non-negative integer with no leading
// zeros (other than "0" itself), returning ok=false for anything else. It
// does not check the index against a length: encoder.Conceal needs to tell
// "not a number" (InvalidPath) apart from "in-range but too large"
// (IndexOutOfBounds).
func parseArrayIndexStrict(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseArrayIndexLoose parses s as an array index and checks it against
// length in one step, for traversal contexts where any failure (malformed
// or out-of-range) collapses to the same InvalidPath outcome.
func parseArrayIndexLoose(s string, length int) (int, bool) {
	n, ok := parseArrayIndexStrict(s)
	if !ok || n >= length {
		return 0, false
	}
	return n, true
}
