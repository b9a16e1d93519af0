package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex_KnownVectors(t *testing.T) {
	testCases := []struct {
		name string
		algo string
		in   string
		want string
	}{
		{
			name: "sha256 empty",
			algo: "sha256",
			in:   "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "sha256 abc",
			algo: "sha256",
			in:   "abc",
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name: "sha3-256 abc",
			algo: "sha3-256",
			in:   "abc",
			want: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Hex(tc.algo, []byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHex_AllAlgorithmsAre256Bit(t *testing.T) {
	for _, name := range Names() {
		got, err := Hex(name, []byte("helloabc123"))
		require.NoError(t, err, name)
		assert.Len(t, got, 64, "%s should render 64 hex characters", name)
	}
}

func TestSum_UnknownAlgorithm(t *testing.T) {
	_, err := Sum("md5", []byte("x"))
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), `"md5"`)
	assert.False(t, Available("md5"))
}

func TestNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"blake2b-256", "blake2s-256", "sha256", "sha3-256"}, Names())
	assert.True(t, Available(Default))
}
