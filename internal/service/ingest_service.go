package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taellinglin/LingTreasury/internal/artifact"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
	"github.com/taellinglin/LingTreasury/internal/serial"
)

// Renderer produces the derived renditions of a vector artifact.
type Renderer interface {
	Thumbnail(svgPath, pngPath string) error
	Document(svgPath, pdfPath string) error
	Combined(notes []model.Banknote, pdfPath string) error
}

// IngestService reconciles the pipeline's output directory tree into
// Banknote and SerialNumber records. Not idempotent: callers must run it at
// most once per successful generation attempt; a re-run trips the
// (serial, side) unique constraint.
type IngestService struct {
	notes      repository.BanknoteRepository
	renderer   Renderer
	imagesRoot string
}

// NewIngestService creates an ingest service rooted at the pipeline's
// output directory.
func NewIngestService(notes repository.BanknoteRepository, renderer Renderer, imagesRoot string) *IngestService {
	return &IngestService{notes: notes, renderer: renderer, imagesRoot: imagesRoot}
}

// Ingest walks images/<identity>/<denomination>/*.svg, derives serials and
// renditions, and persists one Banknote row per discovered side-file plus a
// serial index row per distinct serial, all in one transaction. Afterwards
// it writes the combined all-banknotes PDF for the user.
func (s *IngestService) Ingest(ctx context.Context, userID uint, identity string) error {
	root := filepath.Join(s.imagesRoot, identity)
	denoms, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			// Pipeline reported success but produced nothing; nothing to mint.
			return nil
		}
		return fmt.Errorf("scan output root: %w", err)
	}

	var batch []repository.Minted
	indexed := make(map[string]bool)

	for _, denomEntry := range denoms {
		if !denomEntry.IsDir() {
			continue
		}
		denom := denomEntry.Name()
		denomPath := filepath.Join(root, denom)

		files, err := os.ReadDir(denomPath)
		if err != nil {
			return fmt.Errorf("scan denomination %s: %w", denom, err)
		}

		for _, file := range files {
			name := file.Name()
			if !strings.HasSuffix(strings.ToLower(name), ".svg") {
				continue
			}
			svgPath := filepath.Join(denomPath, name)

			side := model.SideBack
			if strings.Contains(strings.ToUpper(name), "_FRONT") {
				side = model.SideFront
			}

			payload := artifact.ExtractPayload(svgPath)
			serialNumber := s.resolveSerial(denomPath, identity, denom, side, payload)

			base := strings.TrimSuffix(name, filepath.Ext(name))
			pngPath := filepath.Join(denomPath, base+".png")
			pdfPath := filepath.Join(denomPath, base+".pdf")

			if err := s.renderer.Thumbnail(svgPath, pngPath); err != nil {
				return fmt.Errorf("render thumbnail for %s: %w", name, err)
			}
			if err := s.renderer.Document(svgPath, pdfPath); err != nil {
				return fmt.Errorf("render document for %s: %w", name, err)
			}

			minted := repository.Minted{
				Note: &model.Banknote{
					UserID:       userID,
					SerialNumber: serialNumber,
					SeedText:     identity,
					Denomination: denom,
					Side:         side,
					SVGPath:      svgPath,
					PNGPath:      pngPath,
					PDFPath:      pdfPath,
					QRData:       payload,
					IsPublic:     true,
				},
			}
			// One index row per distinct serial: a back side sharing its
			// front's serial reuses the existing row.
			if !indexed[serialNumber] {
				indexed[serialNumber] = true
				minted.Serial = &model.SerialNumber{
					Serial:   serialNumber,
					UserID:   userID,
					IsActive: true,
				}
			}
			batch = append(batch, minted)
		}
	}

	if len(batch) > 0 {
		if err := s.notes.CreateMintedBatch(ctx, batch); err != nil {
			return fmt.Errorf("persist minted batch: %w", err)
		}
	}

	all, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list banknotes: %w", err)
	}
	combinedPath := filepath.Join(root, identity+"_all_banknotes.pdf")
	if err := s.renderer.Combined(all, combinedPath); err != nil {
		return fmt.Errorf("render combined pdf: %w", err)
	}
	return nil
}

// resolveSerial picks the serial for one side-file. An embedded payload with
// the serial prefix wins; a back file without one borrows the serial of the
// denomination's front file; everything else falls back to the synthesized
// deterministic serial.
func (s *IngestService) resolveSerial(denomPath, identity, denom string, side model.NoteSide, payload string) string {
	if serial.HasPrefix(payload) {
		return payload
	}
	if side == model.SideBack {
		if front := s.frontSerial(denomPath); front != "" {
			return front
		}
	}
	return serial.Synthesize(identity, denom, string(side))
}

// frontSerial extracts the payload of the first front file in a
// denomination directory, or "" when no usable one exists.
func (s *IngestService) frontSerial(denomPath string) string {
	files, err := os.ReadDir(denomPath)
	if err != nil {
		return ""
	}
	for _, file := range files {
		upper := strings.ToUpper(file.Name())
		if !strings.HasSuffix(upper, ".SVG") || !strings.Contains(upper, "_FRONT") {
			continue
		}
		payload := artifact.ExtractPayload(filepath.Join(denomPath, file.Name()))
		if serial.HasPrefix(payload) {
			return payload
		}
		return ""
	}
	return ""
}
