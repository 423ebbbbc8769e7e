// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"github.com/gazetapress/gazeta/internal/core/edition"
	"github.com/gazetapress/gazeta/internal/core/pageimage"
	"github.com/gazetapress/gazeta/internal/core/viewer"
	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/constants"
)

// # Outputs

// Artifact is a fully composed export, ready to stream as a download.
type Artifact struct {
	Filename string
	PNG      []byte
}

// ShareLink is the canonical share target for a page as a whole (no crop).
type ShareLink struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// # Service

// Service builds export artifacts and share links from viewer sessions.
type Service struct {
	sessions *viewer.Service
	editions *edition.Service
	images   *pageimage.Resolver

	siteURL  string
	logoPath string

	logoOnce sync.Once
	logo     image.Image

	logger *slog.Logger
}

// NewService constructs an export [Service].
//
// The brand logo at logoPath is decoded lazily on first export; a missing
// or undecodable logo degrades to an empty header band rather than failing
// the export.
func NewService(sessions *viewer.Service, editions *edition.Service, images *pageimage.Resolver, siteURL, logoPath string, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		editions: editions,
		images:   images,
		siteURL:  siteURL,
		logoPath: logoPath,
		logger:   logger,
	}
}

/*
Export composes the branded artifact for a session's active crop.

Description: Requires the session to be in crop mode with a committed
rectangle. Loads the current page image from storage, extracts the crop
(clamped to the image bounds), composes header/footer branding around it,
and PNG-encodes the result.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Artifact: Encoded PNG plus its download filename.
  - error: apperr.NotFound when the session or page image is gone,
    apperr.Unprocessable when crop mode is not active.
*/
func (service *Service) Export(context context.Context, sessionID string) (*Artifact, error) {

	// 1. The session must be mid-crop; exporting outside crop mode has no
	// defined region.
	session, err := service.sessions.GetSession(context, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != viewer.PhaseCropping || session.Crop == nil {
		return nil, apperr.Unprocessable("Crop mode is not active for this session")
	}

	ed, err := service.editions.GetEdition(context, session.EditionID)
	if err != nil {
		return nil, err
	}

	// 2. Load and decode the current page image from storage.
	pageImage, err := service.loadPageImage(session)
	if err != nil {
		return nil, err
	}

	// 3. Extract the crop, clamped so a rectangle dragged past the image
	// edge exports the intersection instead of failing.
	crop := extractCrop(pageImage, *session.Crop)
	if crop == nil {
		return nil, apperr.Unprocessable("Crop region is outside the page image")
	}

	pageNumber := session.PageIndex + 1
	composed := Compose(crop, Branding{Logo: service.brandLogo()}, Metadata{
		SiteURL:         service.siteURL,
		PublicationDate: ed.PublicationDate,
		PageNumber:      pageNumber,
	})

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, composed); err != nil {
		return nil, apperr.Internal(fmt.Errorf("export_encode_failed: %w", err))
	}

	artifact := &Artifact{
		Filename: DownloadFilename(ed.Title, ed.PublicationDate, pageNumber),
		PNG:      buffer.Bytes(),
	}

	service.logger.Info("export_artifact_composed",
		slog.String("session_id", session.ID),
		slog.String("edition_id", ed.ID),
		slog.Int("page", pageNumber),
		slog.Int("bytes", len(artifact.PNG)),
	)
	return artifact, nil
}

/*
Share builds the canonical share link for the session's current page.

Description: The non-crop share path: no image is composed, the link
resolves through the public view handler with the edition pinned by ID so
the recipient sees exactly this edition regardless of publication date.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *ShareLink: Canonical URL, edition title, and a ready-made caption.
  - error: apperr.NotFound when the session or edition is gone.
*/
func (service *Service) Share(context context.Context, sessionID string) (*ShareLink, error) {
	session, err := service.sessions.GetSession(context, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase == viewer.PhaseDisabled {
		return nil, apperr.Unprocessable("This session has no edition to share")
	}

	ed, err := service.editions.GetEdition(context, session.EditionID)
	if err != nil {
		return nil, err
	}

	pageNumber := session.PageIndex + 1
	query := url.Values{}
	query.Set("edition_id", ed.ID)
	if pageNumber > 1 {
		query.Set("page", fmt.Sprintf("%d", pageNumber))
	}

	displayDate := ed.PublicationDate.UTC().Format(constants.DateFormatDisplay)
	return &ShareLink{
		URL:     service.siteURL + "/?" + query.Encode(),
		Title:   ed.Title,
		Caption: fmt.Sprintf("%s (%s) — page %d", ed.Title, displayDate, pageNumber),
	}, nil
}

// loadPageImage opens and decodes the session's current page from storage.
func (service *Service) loadPageImage(session *viewer.Session) (image.Image, error) {
	if session.PageIndex < 0 || session.PageIndex >= session.PageCount() {
		return nil, apperr.Unprocessable("Session page index is out of range")
	}

	filePath, err := service.images.FilePath(session.Pages[session.PageIndex])
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("Page image")
		}
		return nil, apperr.Internal(fmt.Errorf("export_page_open_failed: %w", err))
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("export_page_decode_failed: %w", err))
	}
	return decoded, nil
}

// brandLogo decodes the configured logo once; failures degrade to nil.
func (service *Service) brandLogo() image.Image {
	service.logoOnce.Do(func() {
		if service.logoPath == "" {
			return
		}
		file, err := os.Open(service.logoPath)
		if err != nil {
			service.logger.Warn("export_logo_unavailable", slog.String("path", service.logoPath), slog.Any("error", err))
			return
		}
		defer file.Close()

		decoded, _, err := image.Decode(file)
		if err != nil {
			service.logger.Warn("export_logo_decode_failed", slog.String("path", service.logoPath), slog.Any("error", err))
			return
		}
		service.logo = decoded
	})
	return service.logo
}

// extractCrop copies the intersection of the crop rectangle and the image
// into a fresh RGBA, or returns nil when they do not overlap.
func extractCrop(source image.Image, rect viewer.Rect) image.Image {
	bounds := source.Bounds()
	region := image.Rect(
		bounds.Min.X+int(rect.X),
		bounds.Min.Y+int(rect.Y),
		bounds.Min.X+int(rect.X+rect.W),
		bounds.Min.Y+int(rect.Y+rect.H),
	).Intersect(bounds)

	if region.Empty() {
		return nil
	}

	crop := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(crop, crop.Bounds(), source, region.Min, draw.Src)
	return crop
}
