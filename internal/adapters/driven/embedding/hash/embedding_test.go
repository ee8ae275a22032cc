package hash

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedDeterministic(t *testing.T) {
	svc := NewEmbeddingService(64)

	a, err := svc.Embed(context.Background(), "chess club dues")
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), "chess club dues")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestEmbedDistinctTexts(t *testing.T) {
	svc := NewEmbeddingService(64)

	a, err := svc.Embed(context.Background(), "chess club")
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), "robotics club")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbedNormalised(t *testing.T) {
	svc := NewEmbeddingService(DefaultDimensions)

	vec, err := svc.Embed(context.Background(), "membership requirements")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbedBatch(t *testing.T) {
	svc := NewEmbeddingService(32)

	vecs, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	single, err := svc.Embed(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, single, vecs[1])
}

func TestDefaultDimensions(t *testing.T) {
	assert.Equal(t, DefaultDimensions, NewEmbeddingService(0).Dimensions())
	assert.Equal(t, 128, NewEmbeddingService(128).Dimensions())
}
