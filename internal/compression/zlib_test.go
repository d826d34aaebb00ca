package compression

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	random := make([]byte, 64*1024)
	rnd.Read(random)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "Single byte", data: []byte{0x7f}},
		{name: "Text", data: []byte("file uploaded successfully : img.png")},
		{name: "Repetitive", data: bytes.Repeat([]byte("card"), 10000)},
		{name: "Random", data: random},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := Compress(tc.data)
			require.NoError(t, err)

			restored, err := Decompress(compressed)
			require.NoError(t, err)

			assert.Equal(t, len(tc.data), len(restored))
			assert.True(t, bytes.Equal(tc.data, restored))
		})
	}
}

func TestCompressIsDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("holo rare "), 512)

	first, err := Compress(data)
	require.NoError(t, err)
	second, err := Compress(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Less(t, len(first), len(data))
}

func TestDecompressCorruptData(t *testing.T) {
	t.Run("Not zlib", func(t *testing.T) {
		_, err := Decompress([]byte("definitely not compressed"))
		assert.ErrorIs(t, err, ErrCorruptData)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := Decompress(nil)
		assert.ErrorIs(t, err, ErrCorruptData)
	})

	t.Run("Truncated stream", func(t *testing.T) {
		compressed, err := Compress(bytes.Repeat([]byte("x"), 4096))
		require.NoError(t, err)

		_, err = Decompress(compressed[:len(compressed)/2])
		assert.ErrorIs(t, err, ErrCorruptData)
	})
}
