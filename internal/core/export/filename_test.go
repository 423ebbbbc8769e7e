// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package export_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gazetapress/gazeta/internal/core/export"
)

/*
TestDownloadFilename verifies the slug-date-page-random naming scheme.
*/
func TestDownloadFilename(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	name := export.DownloadFilename("Morning Herald: Späte Ausgabe", date, 3)
	assert.Regexp(t, regexp.MustCompile(`^morning-herald-spate-ausgabe-20240501-3-\d{4}\.png$`), name)
}

/*
TestDownloadFilename_EmptyTitle verifies a blank title falls back to a
generic base instead of producing a leading hyphen.
*/
func TestDownloadFilename_EmptyTitle(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	name := export.DownloadFilename("???", date, 1)
	assert.Regexp(t, regexp.MustCompile(`^edition-20240501-1-\d{4}\.png$`), name)
}

/*
TestDownloadFilename_SuffixVaries verifies repeated exports get distinct
random suffixes (probabilistically: 20 draws over 10000 values).
*/
func TestDownloadFilename_SuffixVaries(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[export.DownloadFilename("Daily", date, 1)] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
