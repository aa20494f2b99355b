package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWatchlist_Missing(t *testing.T) {
	wards, err := loadWatchlist(filepath.Join(t.TempDir(), "wards.txt"))
	require.NoError(t, err)
	assert.Empty(t, wards)
}

func TestLoadWatchlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.txt")
	content := "# wards to chart\nSummertown\n\n  Marston  \nsummertown\nBanbury  Cross and Neithrop\nbanbury cross and neithrop\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	wards, err := loadWatchlist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summertown", "Marston", "Banbury  Cross and Neithrop"}, wards)
}
