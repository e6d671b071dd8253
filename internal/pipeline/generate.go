package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exportdocs/internal"
	"exportdocs/internal/compose"
	"exportdocs/internal/config"
	"exportdocs/internal/source"
	"exportdocs/internal/storage"
)

type GenerationService struct {
	db  *storage.DB
	cfg config.Config
}

func NewGenerationService(db *storage.DB, cfg config.Config) *GenerationService {
	return &GenerationService{db: db, cfg: cfg}
}

type GenerationResult struct {
	FileName string
	Records  []internal.RecordRow
	Totals   internal.RunningTotals
}

// GenerateFromFile runs the whole pipeline for one workbook in the files
// directory: load, ingest, group, aggregate, compose, persist. Artifact
// files are written next to the workbook and one record row is stored per
// produced document pair.
func (s *GenerationService) GenerateFromFile(fileName string, gran compose.Granularity) (GenerationResult, error) {
	sheet, err := source.LoadSheet(filepath.Join(s.cfg.FilesDir, fileName))
	if err != nil {
		return GenerationResult{}, err
	}

	orders, err := s.BuildOrders(sheet)
	if err != nil {
		return GenerationResult{}, err
	}

	baseName := compose.SanitizeID(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	result, err := compose.NewComposer(s.cfg, gran).Compose(baseName, orders)
	if err != nil {
		return GenerationResult{}, err
	}

	out := GenerationResult{FileName: fileName, Totals: result.Totals}
	for _, pair := range result.Pairs {
		if err := s.writeArtifact(pair.Invoice); err != nil {
			return GenerationResult{}, err
		}
		if err := s.writeArtifact(pair.PBE); err != nil {
			return GenerationResult{}, err
		}

		record, err := s.db.InsertRecord(internal.GeneratedArtifact{
			SourceID:   pair.SourceID,
			InvoicePDF: pair.Invoice.Name,
			PBEPDF:     pair.PBE.Name,
			Status:     internal.StatusApproved,
		}, fileName)
		if err != nil {
			return GenerationResult{}, err
		}
		out.Records = append(out.Records, record)
	}

	return out, nil
}

// BuildOrders turns a loaded sheet into composer input, preserving the
// first-seen order of invoice ids.
func (s *GenerationService) BuildOrders(sheet *source.Sheet) ([]compose.Order, error) {
	records, err := IngestRows(sheet, s.cfg.Columns)
	if err != nil {
		return nil, err
	}

	rates := Rates{
		Exchange:     s.cfg.ExchangeRate,
		FreightInr:   s.cfg.FreightInr,
		InsuranceInr: s.cfg.InsuranceInr,
	}

	groups := GroupRows(records)
	orders := make([]compose.Order, 0, len(groups))
	for _, group := range groups {
		orders = append(orders, compose.Order{Group: group, Agg: BuildAggregate(group, rates)})
	}
	return orders, nil
}

func (s *GenerationService) writeArtifact(doc compose.Document) error {
	if err := os.MkdirAll(s.cfg.FilesDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.cfg.FilesDir, doc.Name)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", doc.Name, err)
	}
	return nil
}
