package connectors

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"

	"exportdocs/internal"
	"exportdocs/internal/storage"
)

type StageService struct {
	db       *storage.DB
	filesDir string
}

type StageResult struct {
	Messages int
	Staged   []string
	Skipped  int
}

func NewStageService(db *storage.DB, filesDir string) *StageService {
	return &StageService{db: db, filesDir: filesDir}
}

// StagePending scans fetched mail for workbook attachments and copies them
// into the files directory, ready for generation. Messages without any
// workbook attachment are marked skipped so they are not rescanned.
func (s *StageService) StagePending(limit int, provider string) (StageResult, error) {
	pending, err := s.db.ListMailByStatus("fetched", limit)
	if err != nil {
		return StageResult{}, err
	}

	result := StageResult{}
	for _, mail := range pending {
		if provider != "" && mail.Provider != provider {
			continue
		}
		result.Messages++

		staged, err := s.stageMessage(mail)
		if err != nil {
			return result, err
		}
		if len(staged) == 0 {
			result.Skipped++
			if err := s.db.UpdateMailStatus(mail.ID, "skipped"); err != nil {
				return result, err
			}
			continue
		}

		result.Staged = append(result.Staged, staged...)
		if err := s.db.UpdateMailStatus(mail.ID, "staged"); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *StageService) stageMessage(mail internal.MailRow) ([]string, error) {
	raw, err := os.ReadFile(mail.RawRef)
	if err != nil {
		return nil, fmt.Errorf("read raw mail %s: %w", mail.RawRef, err)
	}

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse mail %s: %w", mail.RawRef, err)
	}

	if err := os.MkdirAll(s.filesDir, 0o755); err != nil {
		return nil, err
	}

	var staged []string
	for _, att := range envelope.Attachments {
		if !isWorkbookName(att.FileName) {
			continue
		}
		name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(att.FileName))
		if err := os.WriteFile(filepath.Join(s.filesDir, name), att.Content, 0o644); err != nil {
			return nil, err
		}
		staged = append(staged, name)
	}
	return staged, nil
}

func isWorkbookName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}
