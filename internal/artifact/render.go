// Package artifact interprets and renders the files the generation pipeline
// leaves behind: SVG payload extraction, PNG thumbnails at banknote
// proportions, and PDF renditions for printing.
package artifact

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/taellinglin/LingTreasury/internal/model"
)

const (
	// Thumbnails use wide low-profile dimensions suited to currency.
	ThumbnailWidth  = 1600
	ThumbnailHeight = 600

	// Placement of a note on a letter-sized PDF page, in points.
	pdfImageX      = 50.0
	pdfImageY      = 50.0
	pdfImageWidth  = 500.0
	pdfImageHeight = 250.0
)

// Renderer produces raster and document renditions of vector artifacts.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Thumbnail rasterizes an SVG artifact to a PNG file at the standard
// banknote aspect.
func (r *Renderer) Thumbnail(svgPath, pngPath string) error {
	img, err := rasterize(svgPath, ThumbnailWidth, ThumbnailHeight)
	if err != nil {
		return err
	}

	out, err := os.Create(pngPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Document renders an SVG artifact to a single-page PDF suited for print.
func (r *Renderer) Document(svgPath, pdfPath string) error {
	img, err := rasterize(svgPath, ThumbnailWidth, ThumbnailHeight)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("note", opts, &buf)
	pdf.ImageOptions("note", pdfImageX, pdfImageY, pdfImageWidth, pdfImageHeight, false, opts, 0, "")

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Combined writes one multi-page PDF over all of a user's notes, one page
// per note with serial and denomination captions, in the given order.
func (r *Renderer) Combined(notes []model.Banknote, pdfPath string) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	for _, note := range notes {
		pdf.AddPage()

		if note.PNGPath != "" {
			if _, err := os.Stat(note.PNGPath); err == nil {
				pdf.ImageOptions(note.PNGPath, pdfImageX, pdfImageY, pdfImageWidth, pdfImageHeight, false, opts, 0, "")
			}
		}

		pdf.Text(pdfImageX, pdfImageY+pdfImageHeight+30, fmt.Sprintf("Serial: %s", note.SerialNumber))
		pdf.Text(pdfImageX, pdfImageY+pdfImageHeight+45, fmt.Sprintf("Denomination: %s", note.Denomination))
	}

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("write combined pdf: %w", err)
	}
	return nil
}

func rasterize(svgPath string, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIcon(svgPath, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}
