package mmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafValue(n byte) Hash {
	var h Hash
	h[31] = n
	return h
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name      string
		leaves    []byte
		wantSize  uint64
		wantPeaks []uint64
	}{
		{"empty store, first append, no merge", []byte{1}, 1, []uint64{1}},
		{"second append triggers one merge", []byte{1, 2}, 3, []uint64{3}},
		{"third append, no merge", []byte{1, 2, 3}, 4, []uint64{3, 4}},
		{"fourth append triggers two merges", []byte{1, 2, 3, 4}, 7, []uint64{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(NewMemoryStore())
			for _, v := range tt.leaves {
				_, err := m.Append(leafValue(v))
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSize, m.Size())

			peaks, err := findPeaks(m.Size())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPeaks, peaks)
		})
	}
}

func TestRootHashEmpty(t *testing.T) {
	m := New(NewMemoryStore())
	root, err := m.RootHash()
	require.NoError(t, err)
	assert.Equal(t, "0x0", root)
}

func TestRootHashScenarios(t *testing.T) {
	m := New(NewMemoryStore())
	v1, v2, v3 := leafValue(1), leafValue(2), leafValue(3)

	_, err := m.Append(v1)
	require.NoError(t, err)
	wantRoot1 := HashValues(encodeCount(1), v1).String()
	got, err := m.RootHash()
	require.NoError(t, err)
	assert.Equal(t, wantRoot1, got)

	_, err = m.Append(v2)
	require.NoError(t, err)
	hash3 := HashValues(v1, v2)
	wantRoot2 := HashValues(encodeCount(3), hash3).String()
	got, err = m.RootHash()
	require.NoError(t, err)
	assert.Equal(t, wantRoot2, got)

	_, err = m.Append(v3)
	require.NoError(t, err)
	wantRoot3 := HashValues(encodeCount(4), HashValues(hash3, v3)).String()
	got, err = m.RootHash()
	require.NoError(t, err)
	assert.Equal(t, wantRoot3, got)
}

func TestRootIdempotent(t *testing.T) {
	m := New(NewMemoryStore())
	for _, v := range []byte{1, 2, 3, 4, 5} {
		_, err := m.Append(leafValue(v))
		require.NoError(t, err)
	}
	first, err := m.RootHash()
	require.NoError(t, err)
	second, err := m.RootHash()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAppendDeterminism(t *testing.T) {
	leaves := []byte{1, 2, 3, 4, 5, 6, 7}
	m1 := New(NewMemoryStore())
	m2 := New(NewMemoryStore())
	for _, v := range leaves {
		_, err := m1.Append(leafValue(v))
		require.NoError(t, err)
		_, err = m2.Append(leafValue(v))
		require.NoError(t, err)
	}
	root1, err := m1.RootHash()
	require.NoError(t, err)
	root2, err := m2.RootHash()
	require.NoError(t, err)
	assert.Equal(t, root1, root2)
	assert.Equal(t, m1.Size(), m2.Size())
}

func TestPeaksCountLaw(t *testing.T) {
	m := New(NewMemoryStore())
	for n := byte(1); n <= 20; n++ {
		_, err := m.Append(leafValue(n))
		require.NoError(t, err)

		leafCount, err := elementsCountToLeafCount(m.Size())
		require.NoError(t, err)
		peaks, err := findPeaks(m.Size())
		require.NoError(t, err)
		assert.Equal(t, popcount(leafCount), uint64(len(peaks)), "leaf %d", n)
	}
}
