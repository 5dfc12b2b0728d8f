// Package digest resolves hash algorithms to concrete functions and tests
// candidate digests against an immutable target set.
package digest

import (
	"crypto/md5"  //nolint:gosec // MD5 is a search target algorithm here, not a security primitive
	"crypto/sha1" //nolint:gosec // same as above
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedAlgorithm indicates an algorithm name outside the supported set.
// It is surfaced at configuration-load time, never per candidate.
var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// Algorithm is a closed set of supported digest algorithms, resolved once at
// configuration time so no per-candidate string dispatch happens in the hot loop.
type Algorithm int

// Supported algorithms.
const (
	MD5 Algorithm = iota
	SHA1
	SHA256
)

// Func computes the lower-case hex digest of a candidate.
type Func func([]byte) string

// ParseAlgorithm maps a configuration name to an Algorithm.
// Accepted names are MD5, SHA-1 and SHA-256 (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "MD5":
		return MD5, nil
	case "SHA-1":
		return SHA1, nil
	case "SHA-256":
		return SHA256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA-1"
	case SHA256:
		return "SHA-256"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// HexLength returns the length of the algorithm's hex-encoded digest.
func (a Algorithm) HexLength() int {
	switch a {
	case MD5:
		return 2 * md5.Size
	case SHA1:
		return 2 * sha1.Size
	case SHA256:
		return 2 * sha256.Size
	default:
		return 0
	}
}

// Func resolves the algorithm to a concrete digest function.
func (a Algorithm) Func() (Func, error) {
	switch a {
	case MD5:
		return func(b []byte) string {
			sum := md5.Sum(b) //nolint:gosec

			return hex.EncodeToString(sum[:])
		}, nil
	case SHA1:
		return func(b []byte) string {
			sum := sha1.Sum(b) //nolint:gosec

			return hex.EncodeToString(sum[:])
		}, nil
	case SHA256:
		return func(b []byte) string {
			sum := sha256.Sum256(b)

			return hex.EncodeToString(sum[:])
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, int(a))
	}
}

// ValidateDigest checks that a digest string is valid lower-or-upper-case hex
// of the algorithm's expected length. Used by the configuration loader so bad
// targets are rejected before any work starts.
func (a Algorithm) ValidateDigest(digest string) error {
	if len(digest) != a.HexLength() {
		return fmt.Errorf("digest %q has length %d, want %d for %s", digest, len(digest), a.HexLength(), a)
	}

	if _, err := hex.DecodeString(digest); err != nil {
		return fmt.Errorf("digest %q is not valid hex: %w", digest, err)
	}

	return nil
}

// TargetSet is a read-only set of normalized (lower-case hex) target digests.
// It is never mutated after construction and is safe for concurrent reads.
type TargetSet struct {
	digests map[string]struct{}
}

// NewTargetSet builds a TargetSet from pre-validated digest strings,
// normalizing to lower case and collapsing duplicates. Validation belongs to
// the loader (see Algorithm.ValidateDigest); the core assumes validated input.
func NewTargetSet(digests []string) TargetSet {
	set := make(map[string]struct{}, len(digests))
	for _, d := range digests {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}

	return TargetSet{digests: set}
}

// Contains reports whether the given hex digest is a target.
func (t TargetSet) Contains(hexDigest string) bool {
	_, ok := t.digests[hexDigest]

	return ok
}

// Size returns the number of distinct target digests.
func (t TargetSet) Size() int {
	return len(t.digests)
}
