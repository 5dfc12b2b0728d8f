package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Algorithm
		wantErr bool
	}{
		{name: "MD5", input: "MD5", want: MD5},
		{name: "lower case md5", input: "md5", want: MD5},
		{name: "SHA-1", input: "SHA-1", want: SHA1},
		{name: "SHA-256", input: "SHA-256", want: SHA256},
		{name: "surrounding whitespace", input: " SHA-256 ", want: SHA256},
		{name: "missing dash", input: "SHA256", wantErr: true},
		{name: "unknown", input: "BLAKE2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithmFunc(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		input     string
		want      string
	}{
		{MD5, "10", "d3d9446802a44259755d38e6d163e820"},
		{MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm.String()+" "+tt.input, func(t *testing.T) {
			hash, err := tt.algorithm.Func()
			require.NoError(t, err)
			assert.Equal(t, tt.want, hash([]byte(tt.input)))
		})
	}

	_, err := Algorithm(99).Func()
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestHexLength(t *testing.T) {
	assert.Equal(t, 32, MD5.HexLength())
	assert.Equal(t, 40, SHA1.HexLength())
	assert.Equal(t, 64, SHA256.HexLength())
}

func TestValidateDigest(t *testing.T) {
	tests := []struct {
		name    string
		alg     Algorithm
		digest  string
		wantErr bool
	}{
		{name: "valid md5", alg: MD5, digest: "d3d9446802a44259755d38e6d163e820"},
		{name: "valid upper case md5", alg: MD5, digest: "D3D9446802A44259755D38E6D163E820"},
		{name: "too short", alg: MD5, digest: "d3d9", wantErr: true},
		{name: "sha256 length for md5", alg: MD5, digest: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", wantErr: true},
		{name: "not hex", alg: MD5, digest: "zzzz446802a44259755d38e6d163e820", wantErr: true},
		{name: "empty", alg: MD5, digest: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.alg.ValidateDigest(tt.digest)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetSet(t *testing.T) {
	set := NewTargetSet([]string{
		"D3D9446802A44259755D38E6D163E820",
		"d3d9446802a44259755d38e6d163e820", // duplicate of the above after normalization
		"900150983cd24fb0d6963f7d28e17f72",
	})

	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Contains("d3d9446802a44259755d38e6d163e820"))
	assert.True(t, set.Contains("900150983cd24fb0d6963f7d28e17f72"))
	assert.False(t, set.Contains("ffffffffffffffffffffffffffffffff"))
}
