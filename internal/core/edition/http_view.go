// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package edition provides the public HTTP interface of the e-paper reader.

It exposes the single resolution endpoint the reader page is built from,
plus the disambiguation listing for dates carrying multiple editions.

# Routing Strategy

  - Public: GET / resolves (date?, edition_id?) into the view payload or a
    302 redirect to the disambiguation picker.
  - Public: GET /editions/date/{date} lists all editions of one date.

The handler translates between the web/JSON layer and the internal domain
[Service]; the resolution chain itself lives in service_resolve.go.
*/
package edition

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gazetapress/gazeta/internal/core/pageimage"
	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/constants"
	"github.com/gazetapress/gazeta/internal/platform/ctxutil"
	requestutil "github.com/gazetapress/gazeta/internal/platform/request"
	"github.com/gazetapress/gazeta/internal/platform/respond"
)

// # View Payload

// Identity is the display-only session boundary: who is looking at the
// page, for chrome rendering only. It never gates the read path.
type Identity struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// OpenGraph carries the social link-preview metadata of a resolved edition.
type OpenGraph struct {
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	URL   string `json:"url"`
}

// ViewPayload is the JSON contract between the server-resolved state and
// the client viewer. EditionImages is the ordered page-image URL list the
// whole client viewer is driven by.
type ViewPayload struct {
	SelectedDate      string     `json:"selectedDate"`
	RawEditionTitle   string     `json:"rawEditionTitle"`
	DisplayTitle      string     `json:"displayTitle"`
	Notification      string     `json:"notification,omitempty"`
	EditionID         string     `json:"editionId,omitempty"`
	EditionImages     []string   `json:"editionImages"`
	PDFURL            string     `json:"pdfUrl,omitempty"`
	PageTurnSoundPath string     `json:"pageTurnSoundPath"`
	OpenGraph         *OpenGraph `json:"og,omitempty"`
	Identity          Identity   `json:"identity"`
}

// # View Handler

// ViewHandler implements the public reader-facing HTTP layer.
type ViewHandler struct {
	service           *Service
	images            *pageimage.Resolver
	siteURL           string
	pageTurnSoundPath string
}

// NewViewHandler constructs the reader [ViewHandler].
func NewViewHandler(service *Service, images *pageimage.Resolver, siteURL, pageTurnSoundPath string) *ViewHandler {
	return &ViewHandler{
		service:           service,
		images:            images,
		siteURL:           siteURL,
		pageTurnSoundPath: pageTurnSoundPath,
	}
}

// RegisterRoutes attaches the public reader endpoints to the root router.
func (handler *ViewHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.View)
	router.Get("/editions/date/{date}", handler.ListByDate)
}

// # Edition Resolution

/*
GET /?date=YYYY-MM-DD&edition_id=ID.

Description: Resolves the request into exactly one edition (or the empty
state) and returns the full view payload, or answers 302 to the
disambiguation picker when the date maps to several editions.

Request:
  - date: string (optional, YYYY-MM-DD)
  - edition_id: string (optional, UUID)

Response:
  - 200: ViewPayload
  - 302: Location /editions/date/{date} when the date is ambiguous
  - 400: Validation: malformed date parameter
*/
func (handler *ViewHandler) View(writer http.ResponseWriter, request *http.Request) {

	resolveRequest := ResolveRequest{
		EditionID: request.URL.Query().Get("edition_id"),
	}

	if rawDate := request.URL.Query().Get("date"); rawDate != "" {
		parsed, err := time.Parse(constants.DateFormatISO, rawDate)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Date must be formatted YYYY-MM-DD"))
			return
		}
		resolveRequest.Date = &parsed
	}

	resolution := handler.service.Resolve(request.Context(), resolveRequest, time.Now())

	// The redirect signal always wins: no body is rendered for it.
	if resolution.RedirectTo != "" {
		http.Redirect(writer, request, resolution.RedirectTo, http.StatusFound)
		return
	}

	respond.OK(writer, handler.buildPayload(request, resolution))
}

// buildPayload assembles the [ViewPayload] for a non-redirect resolution.
func (handler *ViewHandler) buildPayload(request *http.Request, resolution *Resolution) ViewPayload {

	payload := ViewPayload{
		SelectedDate:      resolution.SelectedDate.Format(constants.DateFormatISO),
		DisplayTitle:      resolution.DisplayTitle,
		Notification:      resolution.Notification,
		EditionImages:     []string{},
		PageTurnSoundPath: handler.pageTurnSoundPath,
		Identity:          identityFrom(request),
	}

	if resolution.Edition == nil {
		return payload
	}

	e := resolution.Edition
	payload.EditionID = e.ID
	payload.RawEditionTitle = e.Title
	payload.PDFURL = handler.images.PDFURL(e.PDFPath)

	// A broken image directory degrades the page viewer only; edition
	// metadata and the PDF download stay available.
	pages, err := handler.images.Resolve(e.PDFPath)
	if err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "page_image_resolution_failed",
			slog.String("edition_id", e.ID),
			slog.Any("error", err),
		)
		pages = []pageimage.PageImage{}
	}
	payload.EditionImages = pageimage.URLs(pages)

	// Social preview: explicit OG image, else the first page image.
	ogImage := e.OGImagePath
	if ogImage == "" && len(payload.EditionImages) > 0 {
		ogImage = payload.EditionImages[0]
	}
	payload.OpenGraph = &OpenGraph{
		Title: resolution.DisplayTitle,
		Image: ogImage,
		URL:   handler.siteURL + "/?edition_id=" + e.ID,
	}

	return payload
}

// # Disambiguation Listing

/*
GET /editions/date/{date}.

Description: Returns every published edition of one calendar date so the
reader can pick; this is the target of the ambiguity redirect.

Request:
  - date: string (YYYY-MM-DD)

Response:
  - 200: []Edition
  - 400: Validation: malformed date parameter
*/
func (handler *ViewHandler) ListByDate(writer http.ResponseWriter, request *http.Request) {
	rawDate := requestutil.Param(request, "date")

	date, err := time.Parse(constants.DateFormatISO, rawDate)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Date must be formatted YYYY-MM-DD"))
		return
	}

	editions, err := handler.service.ListEditionsForDate(request.Context(), date)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if editions == nil {
		editions = []*Edition{}
	}

	respond.OK(writer, map[string]any{
		"date":  rawDate,
		"items": editions,
	})
}

// identityFrom extracts the display identity from the request context.
func identityFrom(request *http.Request) Identity {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return Identity{}
	}
	return Identity{
		LoggedIn: true,
		Username: claims.Username,
		Role:     claims.Role,
	}
}
