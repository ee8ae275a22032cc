package extractors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/extractors/plaintext"
)

func TestRegistryForPath(t *testing.T) {
	reg := NewRegistry(plaintext.New())

	ext, err := reg.ForPath("clubs/chess_club.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatTXT, ext.Format())

	// Extension matching is case-insensitive.
	ext, err = reg.ForPath("clubs/CHESS_CLUB.TXT")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatTXT, ext.Format())

	_, err = reg.ForPath("clubs/chess_club.pptx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistrySupported(t *testing.T) {
	reg := NewRegistry(plaintext.New())
	assert.True(t, reg.Supported("handbook.txt"))
	assert.False(t, reg.Supported("handbook.md"))
}

func TestPlaintextExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robotics_club.txt")
	require.NoError(t, os.WriteFile(path, []byte("The Robotics Club meets weekly."), 0o644))

	got, err := plaintext.New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "The Robotics Club meets weekly.", got)
}

func TestPlaintextExtractMissingFile(t *testing.T) {
	_, err := plaintext.New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
