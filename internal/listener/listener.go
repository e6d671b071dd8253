package listener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exportdocs/internal/compose"
	"exportdocs/internal/config"
	"exportdocs/internal/connectors"
	gmailconnector "exportdocs/internal/connectors/gmail"
	imapconnector "exportdocs/internal/connectors/imap"
	"exportdocs/internal/pipeline"
	"exportdocs/internal/storage"
)

type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Run polls the mailbox until the context is cancelled. Each cycle fetches
// new mail, stages workbook attachments, and generates document pairs for
// every staged workbook.
func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.MailListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.MailListenerProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.RawMailDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.MailListenerLabel, s.cfg.MailListenerFetchMax)
	if err != nil {
		return err
	}

	stageService := connectors.NewStageService(s.db, s.cfg.FilesDir)
	stageResult, err := stageService.StagePending(s.cfg.MailListenerStageBatch, provider)
	if err != nil {
		return err
	}

	generator := pipeline.NewGenerationService(s.db, s.cfg)
	generated := 0
	for _, fileName := range stageResult.Staged {
		result, err := generator.GenerateFromFile(fileName, compose.Combined)
		if err != nil {
			fmt.Printf("listener generate error file=%s: %v\n", fileName, err)
			continue
		}
		generated += len(result.Records)
	}

	fmt.Printf("listener cycle done provider=%s fetched=%d stored=%d staged=%d generated=%d\n",
		provider, fetchResult.Fetched, fetchResult.Stored, len(stageResult.Staged), generated)
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}
