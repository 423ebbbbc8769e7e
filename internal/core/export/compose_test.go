// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package export_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetapress/gazeta/internal/core/export"
)

// solidImage builds a uniformly colored test image.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var testMeta = export.Metadata{
	SiteURL:         "https://gazeta.news",
	PublicationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	PageNumber:      3,
}

/*
TestCompose_Geometry verifies the banded layout: header + crop + footer
stacked vertically, canvas as wide as the crop.
*/
func TestCompose_Geometry(t *testing.T) {
	crop := solidImage(400, 300, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	composed := export.Compose(crop, export.Branding{}, testMeta)

	require.Equal(t, 400, composed.Bounds().Dx())
	require.Equal(t, export.HeaderHeight+300+export.FooterHeight, composed.Bounds().Dy())

	// The crop occupies the middle band unchanged.
	assert.Equal(t, color.RGBA{R: 200, G: 10, B: 10, A: 255}, composed.RGBAAt(200, export.HeaderHeight+150))

	// The header band is blank without a logo.
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, composed.RGBAAt(200, export.HeaderHeight/2))
}

/*
TestCompose_NarrowCropWidensCanvas verifies a sliver crop still yields a
canvas wide enough for the footer text, with the crop centered.
*/
func TestCompose_NarrowCropWidensCanvas(t *testing.T) {
	crop := solidImage(40, 200, color.RGBA{B: 255, A: 255})

	composed := export.Compose(crop, export.Branding{}, testMeta)

	require.Equal(t, 320, composed.Bounds().Dx())

	// Crop centered: present at the middle column, absent near the edges.
	assert.Equal(t, color.RGBA{B: 255, A: 255}, composed.RGBAAt(160, export.HeaderHeight+100))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, composed.RGBAAt(10, export.HeaderHeight+100))
}

/*
TestCompose_FooterCarriesText verifies the footer band contains rendered
text (non-background pixels) and the crop band does not bleed into it.
*/
func TestCompose_FooterCarriesText(t *testing.T) {
	crop := solidImage(400, 300, color.RGBA{G: 128, A: 255})

	composed := export.Compose(crop, export.Branding{}, testMeta)

	footerTop := export.HeaderHeight + 300
	bounds := composed.Bounds()

	found := false
	for y := footerTop; y < bounds.Dy() && !found; y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if composed.RGBAAt(x, y) == (color.RGBA{R: 0, G: 0, B: 0, A: 255}) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected black text pixels in the footer band")
}

/*
TestCompose_LogoScaledIntoHeader verifies an oversized logo is scaled down
into the header band and centered.
*/
func TestCompose_LogoScaledIntoHeader(t *testing.T) {
	crop := solidImage(600, 200, color.RGBA{R: 255, A: 255})
	logo := solidImage(1200, 400, color.RGBA{R: 10, G: 10, B: 200, A: 255})

	composed := export.Compose(crop, export.Branding{Logo: logo}, testMeta)

	// The header center carries logo color, the band corners stay white.
	center := composed.RGBAAt(300, export.HeaderHeight/2)
	assert.NotEqual(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, center)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, composed.RGBAAt(2, 2))
}
