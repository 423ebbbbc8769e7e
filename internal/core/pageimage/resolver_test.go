// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package pageimage_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetapress/gazeta/internal/core/pageimage"
)

func newTestResolver(t *testing.T) (*pageimage.Resolver, string) {
	t.Helper()
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return pageimage.NewResolver(root, logger), root
}

// writePages creates an edition directory with the given image filenames.
func writePages(t *testing.T, root, editionDir string, names ...string) {
	t.Helper()
	imagesDir := filepath.Join(root, editionDir, "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(imagesDir, name), []byte("img"), 0o644))
	}
}

/*
TestResolver_NumericOrdering verifies pages sort by numeric page number,
not lexically (page-10 must follow page-2).
*/
func TestResolver_NumericOrdering(t *testing.T) {
	resolver, root := newTestResolver(t)
	writePages(t, root, "editions/2024/05/01/abc", "page-10.jpg", "page-1.jpg", "page-2.jpg")

	pages, err := resolver.Resolve("editions/2024/05/01/abc/edition.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 10, pages[2].Number)
	assert.Equal(t, "/uploads/editions/2024/05/01/abc/images/page-1.jpg", pages[0].URL)
}

/*
TestResolver_LegacyPathPrefix verifies the "/../uploads/" prefixes written
by the legacy upload pipeline resolve onto the storage root.
*/
func TestResolver_LegacyPathPrefix(t *testing.T) {
	resolver, root := newTestResolver(t)
	writePages(t, root, "editions/2024/05/01/abc", "page-1.jpg")

	pages, err := resolver.Resolve("/../uploads/editions/2024/05/01/abc/edition.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "/uploads/editions/2024/05/01/abc/images/page-1.jpg", pages[0].URL)
}

/*
TestResolver_MissingDirectory verifies a missing images directory degrades
to an empty set instead of an error.
*/
func TestResolver_MissingDirectory(t *testing.T) {
	resolver, _ := newTestResolver(t)

	pages, err := resolver.Resolve("editions/2024/05/01/ghost/edition.pdf")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

/*
TestResolver_UnparseableFilenames verifies files outside the page-<N>
naming scheme are excluded rather than coerced to page zero.
*/
func TestResolver_UnparseableFilenames(t *testing.T) {
	resolver, root := newTestResolver(t)
	writePages(t, root, "editions/2024/06/01/def",
		"page-1.jpg", "cover.jpg", "page-final.png", "thumb-2.webp", "page-2.webp")

	pages, err := resolver.Resolve("editions/2024/06/01/def/edition.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
}

/*
TestResolver_TraversalNeutralized verifies interior traversal cannot escape
the storage root.
*/
func TestResolver_TraversalNeutralized(t *testing.T) {
	resolver, _ := newTestResolver(t)

	pages, err := resolver.Resolve("../../../../etc/passwd")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestSanitizeStoredPath(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"plain_relative", "editions/2024/05/01/abc/e.pdf", "editions/2024/05/01/abc/e.pdf"},
		{"legacy_prefix", "/../uploads/editions/abc/e.pdf", "editions/abc/e.pdf"},
		{"leading_slash", "/uploads/editions/abc/e.pdf", "editions/abc/e.pdf"},
		{"interior_traversal", "editions/../../secret.pdf", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageimage.SanitizeStoredPath(tt.stored))
		})
	}
}

/*
TestResolver_FilePath verifies the URL-to-disk inversion and its rejection
of URLs outside the uploads mount.
*/
func TestResolver_FilePath(t *testing.T) {
	resolver, root := newTestResolver(t)

	path, err := resolver.FilePath("/uploads/editions/abc/images/page-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "editions", "abc", "images", "page-1.jpg"), path)

	_, err = resolver.FilePath("/etc/passwd")
	assert.Error(t, err)

	_, err = resolver.FilePath("/uploads/../etc/passwd")
	assert.Error(t, err)
}
