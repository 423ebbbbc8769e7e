// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package export

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gazetapress/gazeta/internal/platform/constants"
	"github.com/gazetapress/gazeta/pkg/slug"
)

// # Download Filename

/*
DownloadFilename builds the attachment name for a composed artifact.

Description: Slugifies the edition title, appends the publication date in
compact form, the 1-based page number, and a 4-digit random suffix so
repeated exports of the same region never collide in the reader's
download directory.

Parameters:
  - title: string — the edition title, any printable text.
  - publicationDate: time.Time
  - pageNumber: int

Returns:
  - string: e.g. "morning-herald-20240501-3-4821.png".
*/
func DownloadFilename(title string, publicationDate time.Time, pageNumber int) string {
	base := slug.From(title)
	if base == "" {
		base = "edition"
	}
	return fmt.Sprintf("%s-%s-%d-%04d.png",
		base,
		publicationDate.UTC().Format(constants.DateFormatCompact),
		pageNumber,
		rand.Intn(10000),
	)
}
