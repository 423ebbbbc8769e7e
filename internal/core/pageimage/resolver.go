// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package pageimage resolves an edition's stored PDF path into the ordered list
of per-page images actually present on disk.

The upload pipeline writes one image per physical newspaper page next to the
source PDF, inside a fixed "images/" subfolder, named "page-<N>.<ext>". This
package owns the three steps that turn a raw stored path into web URLs:

  - Sanitization: legacy rows carry "../"-style prefixes that must never
    reach the filesystem layer.
  - Discovery: list the images directory; a missing or empty directory is a
    degraded state, not an error (the edition metadata and PDF download
    still work).
  - Ordering: strictly numeric by page number, so page-2 sorts before
    page-10 regardless of lexical filename order.
*/
package pageimage

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
)

// imagesSubdir is the fixed per-edition folder the upload pipeline writes
// page images into, as a sibling of the source PDF.
const imagesSubdir = "images"

// uploadsMount is the public web prefix under which StorageRoot is served.
const uploadsMount = "/uploads"

// pageFilePattern matches "page-<N>.<ext>" filenames and captures the
// numeric page component.
var pageFilePattern = regexp.MustCompile(`^page-(\d+)\.(?:jpg|jpeg|png|webp)$`)

// # Page Image Set

// PageImage is one resolved, web-servable page of an edition.
type PageImage struct {
	// Number is the 1-based physical page number parsed from the filename.
	Number int `json:"number"`

	// URL is the web path of the image, relative to the site root.
	URL string `json:"url"`
}

// # Resolver

// Resolver derives page-image sets from stored PDF paths.
type Resolver struct {
	storageRoot string
	logger      *slog.Logger
}

// NewResolver constructs a [Resolver] rooted at the uploads directory.
func NewResolver(storageRoot string, logger *slog.Logger) *Resolver {
	return &Resolver{storageRoot: storageRoot, logger: logger}
}

/*
Resolve lists the page images derived from an edition's stored PDF path.

Description: Sanitizes the stored path, derives the sibling "images/"
directory, and returns its page files sorted ascending by numeric page
number. Files that match no parseable page number are excluded and logged —
silently coercing them to page 0 would collide with a real first page.

Parameters:
  - storedPDFPath: string — the raw pdfpath column value, possibly carrying
    a legacy "../" prefix.

Returns:
  - []PageImage: Ordered set; empty (never nil error) when the directory is
    missing or holds no matching files.
  - error: Only on genuine filesystem read failures.
*/
func (resolver *Resolver) Resolve(storedPDFPath string) ([]PageImage, error) {

	// 1. Neutralize legacy traversal prefixes before any disk access.
	relativePDF := SanitizeStoredPath(storedPDFPath)
	if relativePDF == "" {
		return []PageImage{}, nil
	}

	// 2. Derive the conventional images directory next to the PDF.
	imageDir := filepath.Join(resolver.storageRoot, filepath.Dir(filepath.FromSlash(relativePDF)), imagesSubdir)

	// 3. A missing directory degrades to an empty set.
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		if os.IsNotExist(err) {
			resolver.logger.Warn("page_image_directory_missing",
				slog.String("dir", imageDir),
			)
			return []PageImage{}, nil
		}
		return nil, fmt.Errorf("pageimage: failed to read image directory: %w", err)
	}

	// 4. Collect files matching the page naming pattern.
	webDir := path.Join(uploadsMount, path.Dir(relativePDF), imagesSubdir)

	var pages []PageImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		number, ok := parsePageNumber(entry.Name())
		if !ok {
			resolver.logger.Warn("page_image_filename_unparseable",
				slog.String("file", entry.Name()),
				slog.String("dir", imageDir),
			)
			continue
		}

		pages = append(pages, PageImage{
			Number: number,
			URL:    path.Join(webDir, entry.Name()),
		})
	}

	// 5. Strictly numeric ascending order; stable so equal numbers keep
	// their directory order.
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})

	if pages == nil {
		pages = []PageImage{}
	}

	return pages, nil
}

// PDFURL returns the web path of the edition's source PDF, offered to
// readers as a direct download alongside the page viewer.
func (resolver *Resolver) PDFURL(storedPDFPath string) string {
	relativePDF := SanitizeStoredPath(storedPDFPath)
	if relativePDF == "" {
		return ""
	}
	return path.Join(uploadsMount, relativePDF)
}

/*
FilePath maps a served page-image URL back to its on-disk location.

Description: Inverts the URL construction done by [Resolver.Resolve]: the
"/uploads" mount prefix is stripped and the remainder joined under the
storage root. URLs outside the mount are rejected so this can never open a
file the resolver would not itself serve.

Parameters:
  - webURL: string — a URL previously produced by Resolve.

Returns:
  - string: Absolute filesystem path.
  - error: apperr.ValidationError when the URL is not under the uploads mount.
*/
func (resolver *Resolver) FilePath(webURL string) (string, error) {
	relative := strings.TrimPrefix(webURL, uploadsMount+"/")
	if relative == webURL || SanitizeStoredPath(relative) != relative {
		return "", apperr.ValidationError(fmt.Sprintf("url %q is not a served page image", webURL))
	}
	return filepath.Join(resolver.storageRoot, filepath.FromSlash(relative)), nil
}

// URLs returns just the ordered web paths of a resolved page set.
func URLs(pages []PageImage) []string {
	urls := make([]string, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, page.URL)
	}
	return urls
}

// # Path Sanitization

// SanitizeStoredPath converts a raw stored PDF path into a clean
// storage-relative path.
//
// Legacy rows were written by a system that stored paths relative to its
// own document root, producing values like "/../uploads/editions/.../x.pdf".
// All traversal segments and leading slashes are stripped; the result is
// safe to join under the storage root.
func SanitizeStoredPath(stored string) string {
	cleaned := strings.ReplaceAll(stored, "\\", "/")

	// Drop every leading "/" and "../" sequence.
	for {
		switch {
		case strings.HasPrefix(cleaned, "/"):
			cleaned = strings.TrimPrefix(cleaned, "/")
		case strings.HasPrefix(cleaned, "../"):
			cleaned = strings.TrimPrefix(cleaned, "../")
		default:
			// path.Clean removes any interior traversal left over.
			cleaned = path.Clean(cleaned)
			if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
				return ""
			}

			// The upload pipeline stores paths under the uploads mount;
			// strip that prefix so the result is storage-root relative.
			cleaned = strings.TrimPrefix(cleaned, "uploads/")
			return cleaned
		}
	}
}

// parsePageNumber extracts the numeric page component from a filename.
func parsePageNumber(name string) (int, bool) {
	match := pageFilePattern.FindStringSubmatch(strings.ToLower(name))
	if match == nil {
		return 0, false
	}

	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return number, true
}
