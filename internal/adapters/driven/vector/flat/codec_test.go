package flat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add(
		[]float32{0.1, -0.2, 0.3},
		[]float32{1, 0, 0},
		[]float32{-0.5, 0.5, 0.70710678},
	))

	var buf bytes.Buffer
	n, err := idx.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	loaded, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Dimension())
	assert.Equal(t, 3, loaded.Len())
	assert.Equal(t, idx.data, loaded.data)
}

func TestCodec_RoundTripEmpty(t *testing.T) {
	idx, err := New(4)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Dimension())
	assert.Equal(t, 0, loaded.Len())
}

func TestCodec_SearchAfterReload(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add([]float32{1, 0}, []float32{0, 1}))

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := Read(&buf)
	require.NoError(t, err)

	hits, err := loaded.Search([]float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Ordinal)
}

func TestCodec_RejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE\x01\x00\x00\x00")))
	assert.ErrorContains(t, err, "bad magic")
}

func TestCodec_RejectsTruncatedData(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add([]float32{1, 0}, []float32{0, 1}))

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.Error(t, err)
}

func TestCodec_RejectsUnsupportedVersion(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[4] = 99 // version field follows the magic

	_, err = Read(bytes.NewReader(raw))
	assert.ErrorContains(t, err, "unsupported codec version")
}
