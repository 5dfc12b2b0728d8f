// Package keyspace maps linear indices to fixed-length candidate strings over a
// character set. The mapping is a bijection: every index in [0, Total) decodes
// to exactly one candidate, and every candidate of the configured length encodes
// back to its index. Workers rely on this to start anywhere in their assigned
// range without iterating from zero.
package keyspace

import (
	"errors"
	"fmt"
	"math"
)

// ErrIndexOutOfRange indicates a decode request outside [0, Total).
// It is a contract violation: chunk boundaries are computed from Total,
// so this error points at a chunking bug rather than bad user input.
var ErrIndexOutOfRange = errors.New("index out of keyspace range")

// Space is an immutable description of a fixed-length keyspace.
type Space struct {
	charset string       // ordered symbols; each candidate position holds one of these
	length  int          // candidate length in symbols
	total   uint64       // len(charset)^length
	digits  [256]int16   // symbol byte -> digit value, -1 for symbols outside the charset
}

// New constructs a Space over the given charset and candidate length.
// The charset must be non-empty with distinct symbols, the length positive,
// and len(charset)^length must fit in a uint64; otherwise an error is returned.
func New(charset string, length int) (*Space, error) {
	if len(charset) == 0 {
		return nil, errors.New("charset must not be empty")
	}

	if length < 1 {
		return nil, fmt.Errorf("length must be positive, got %d", length)
	}

	s := &Space{charset: charset, length: length}
	for i := range s.digits {
		s.digits[i] = -1
	}

	for i := 0; i < len(charset); i++ {
		if s.digits[charset[i]] != -1 {
			return nil, fmt.Errorf("charset contains duplicate symbol %q", charset[i])
		}

		s.digits[charset[i]] = int16(i)
	}

	base := uint64(len(charset))
	total := uint64(1)

	for i := 0; i < length; i++ {
		if total > math.MaxUint64/base {
			return nil, fmt.Errorf("keyspace %d^%d overflows uint64", base, length)
		}

		total *= base
	}

	s.total = total

	return s, nil
}

// Charset returns the ordered symbol set.
func (s *Space) Charset() string {
	return s.charset
}

// Length returns the candidate length in symbols.
func (s *Space) Length() int {
	return s.length
}

// Total returns the number of candidates in the keyspace.
func (s *Space) Total() uint64 {
	return s.total
}

// Decode maps an index to its candidate string.
// Returns ErrIndexOutOfRange if index >= Total.
func (s *Space) Decode(index uint64) (string, error) {
	if index >= s.total {
		return "", fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, s.total)
	}

	return string(s.AppendCandidate(nil, index)), nil
}

// AppendCandidate appends the candidate for index to dst and returns the
// extended slice. It performs no range check and no allocation when dst has
// capacity; callers must guarantee index < Total. This is the hot-loop variant
// used by workers, which iterate only over validated chunk ranges.
func (s *Space) AppendCandidate(dst []byte, index uint64) []byte {
	base := uint64(len(s.charset))
	start := len(dst)
	dst = append(dst, make([]byte, s.length)...)

	// Mixed-radix expansion, least significant digit last.
	for i := s.length - 1; i >= 0; i-- {
		dst[start+i] = s.charset[index%base]
		index /= base
	}

	return dst
}

// Encode maps a candidate string back to its index, inverting Decode.
// It returns an error if the candidate has the wrong length or contains
// a symbol outside the charset.
func (s *Space) Encode(candidate string) (uint64, error) {
	if len(candidate) != s.length {
		return 0, fmt.Errorf("candidate length %d, want %d", len(candidate), s.length)
	}

	base := uint64(len(s.charset))
	index := uint64(0)

	for i := 0; i < len(candidate); i++ {
		digit := s.digits[candidate[i]]
		if digit < 0 {
			return 0, fmt.Errorf("candidate symbol %q not in charset", candidate[i])
		}

		index = index*base + uint64(digit)
	}

	return index, nil
}
