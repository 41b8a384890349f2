package hashid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalt = "test salt"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec, err := NewCodec(testSalt)
	require.NoError(t, err)

	ids := []int64{0, 1, 2, 7, 42, 100, 999, 12345, 999999, 123456789}
	for _, id := range ids {
		hash, err := codec.Encode(id)
		require.NoError(t, err)

		decoded, ok := codec.Decode(hash)
		assert.True(t, ok, "hash %q of id %d must decode", hash, id)
		assert.Equal(t, id, decoded)
	}
}

func TestEncodeOutputFormat(t *testing.T) {
	codec, err := NewCodec(testSalt)
	require.NoError(t, err)

	for id := int64(0); id < 2000; id++ {
		hash, err := codec.Encode(id)
		require.NoError(t, err)

		assert.Len(t, hash, HashLength, "id %d", id)
		for _, r := range hash {
			assert.True(t, strings.ContainsRune(Alphabet, r),
				"hash %q of id %d contains %q outside the alphabet", hash, id, r)
		}
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	codec, err := NewCodec(testSalt)
	require.NoError(t, err)

	// none of these may panic; a decode either succeeds or reports not found
	inputs := []string{"", "UPPERCASE", "with space", "käsehash!", "---", "…"}
	for _, input := range inputs {
		_, ok := codec.Decode(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestDecodeArbitraryAlphabetStrings(t *testing.T) {
	codec, err := NewCodec(testSalt)
	require.NoError(t, err)

	// strings from the right alphabet that were never produced by Encode
	// must yield either a non-negative integer or not found, never a panic
	for _, input := range []string{"aaaaaaaa", "zzzzzzzz", "a1b2c3d4", "00000000"} {
		id, ok := codec.Decode(input)
		if ok {
			assert.GreaterOrEqual(t, id, int64(0))
		}
	}
}

func TestDifferentSaltsProduceDifferentHashes(t *testing.T) {
	first, err := NewCodec("salt one")
	require.NoError(t, err)
	second, err := NewCodec("salt two")
	require.NoError(t, err)

	firstHash, err := first.Encode(42)
	require.NoError(t, err)
	secondHash, err := second.Encode(42)
	require.NoError(t, err)

	assert.NotEqual(t, firstHash, secondHash)
}
