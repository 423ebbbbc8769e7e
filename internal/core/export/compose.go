// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

/*
Package export turns a reader-selected region of a page image into a
branded, shareable artifact.

The composition itself is a pure function over decoded images — no HTTP,
no filesystem — so the banding/scaling/labelling rules are unit-testable
without a browser or a real edition on disk.

Layout of a composed artifact (top to bottom):

  - Header band: fixed height, centered aspect-preserved logo.
  - The cropped region, unscaled.
  - Footer band: fixed height, three left-aligned text lines — site URL,
    publication date (DD-MM-YYYY), page number.
*/
package export

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gazetapress/gazeta/internal/platform/constants"
)

// # Composition Geometry

const (
	// HeaderHeight is the fixed pixel height of the branding band.
	HeaderHeight = 96

	// FooterHeight is the fixed pixel height of the metadata band.
	FooterHeight = 72

	// logoMaxWidth caps the logo's scaled width inside the header.
	logoMaxWidth = 360

	// logoMargin keeps the logo off the header band's edges.
	logoMargin = 8

	// footerPadding is the left inset and line spacing of footer text.
	footerPadding = 12

	// footerLineHeight is the vertical advance between footer lines.
	footerLineHeight = 18

	// minCanvasWidth guarantees room for the footer text even when the
	// reader crops a sliver.
	minCanvasWidth = 320
)

// # Inputs

// Branding carries the visual identity composited into the artifact.
type Branding struct {
	// Logo is the application logo, nil when unconfigured — the header
	// band is then rendered empty.
	Logo image.Image
}

// Metadata is the footer text content of a composed artifact.
type Metadata struct {
	SiteURL         string
	PublicationDate time.Time
	PageNumber      int // 1-based, as shown to the reader
}

// # Composition

/*
Compose assembles the branded export image.

Description: Produces a canvas as wide as the crop (with a floor so footer
text always fits) and as tall as header + crop + footer. The crop is drawn
unscaled; the logo is scaled down preserving aspect ratio so it exceeds
neither the header band nor the canvas width, and is centered in the band.

Parameters:
  - crop: image.Image — the region the reader selected.
  - branding: Branding
  - meta: Metadata

Returns:
  - *image.RGBA: The composed artifact.
*/
func Compose(crop image.Image, branding Branding, meta Metadata) *image.RGBA {

	cropBounds := crop.Bounds()
	canvasWidth := cropBounds.Dx()
	if canvasWidth < minCanvasWidth {
		canvasWidth = minCanvasWidth
	}
	canvasHeight := HeaderHeight + cropBounds.Dy() + FooterHeight

	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	// ── Header band ───────────────────────────────────────────────────────
	if branding.Logo != nil {
		drawLogo(canvas, branding.Logo, canvasWidth)
	}

	// ── Cropped region, horizontally centered when narrower than canvas ──
	cropX := (canvasWidth - cropBounds.Dx()) / 2
	cropTarget := image.Rect(cropX, HeaderHeight, cropX+cropBounds.Dx(), HeaderHeight+cropBounds.Dy())
	draw.Draw(canvas, cropTarget, crop, cropBounds.Min, draw.Src)

	// ── Footer band ──────────────────────────────────────────────────────
	drawFooter(canvas, meta, canvasHeight)

	return canvas
}

// drawLogo scales the logo to fit the header band and centers it.
func drawLogo(canvas *image.RGBA, logo image.Image, canvasWidth int) {
	logoBounds := logo.Bounds()
	if logoBounds.Dx() == 0 || logoBounds.Dy() == 0 {
		return
	}

	maxWidth := logoMaxWidth
	if maxWidth > canvasWidth-2*logoMargin {
		maxWidth = canvasWidth - 2*logoMargin
	}
	maxHeight := HeaderHeight - 2*logoMargin

	// Aspect-preserving downscale; never upscale a small logo.
	scale := 1.0
	if w := float64(maxWidth) / float64(logoBounds.Dx()); w < scale {
		scale = w
	}
	if h := float64(maxHeight) / float64(logoBounds.Dy()); h < scale {
		scale = h
	}

	targetWidth := int(float64(logoBounds.Dx()) * scale)
	targetHeight := int(float64(logoBounds.Dy()) * scale)
	if targetWidth < 1 || targetHeight < 1 {
		return
	}

	x := (canvasWidth - targetWidth) / 2
	y := (HeaderHeight - targetHeight) / 2
	target := image.Rect(x, y, x+targetWidth, y+targetHeight)

	xdraw.CatmullRom.Scale(canvas, target, logo, logoBounds, xdraw.Over, nil)
}

// drawFooter renders the three metadata lines into the footer band.
func drawFooter(canvas *image.RGBA, meta Metadata, canvasHeight int) {
	lines := []string{
		meta.SiteURL,
		meta.PublicationDate.UTC().Format(constants.DateFormatDisplay),
		"Page " + strconv.Itoa(meta.PageNumber),
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}

	baseline := canvasHeight - FooterHeight + footerPadding + basicfont.Face7x13.Ascent
	for _, line := range lines {
		drawer.Dot = fixed.P(footerPadding, baseline)
		drawer.DrawString(line)
		baseline += footerLineHeight
	}
}
