package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exportdocs/internal"
	"exportdocs/internal/compose"
	"exportdocs/internal/config"
	"exportdocs/internal/connectors"
	gmailconnector "exportdocs/internal/connectors/gmail"
	imapconnector "exportdocs/internal/connectors/imap"
	"exportdocs/internal/listener"
	"exportdocs/internal/pipeline"
	"exportdocs/internal/render"
	"exportdocs/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "workbook file name inside FILES_DIR")
		perOrder := fs.Bool("per-order", false, "one document pair per order instead of one pair per workbook")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		gran := compose.Combined
		if *perOrder {
			gran = compose.PerOrder
		}
		svc := pipeline.NewGenerationService(db, cfg)
		result, err := svc.GenerateFromFile(*file, gran)
		must(err)
		for _, record := range result.Records {
			fmt.Printf("generated id=%d invoice=%s pbe=%s\n", record.ID, record.InvoicePDF, record.PBEPDF)
		}
		fmt.Printf("generate done file=%s pairs=%d orders=%d\n", *file, len(result.Records), result.Totals.Orders)
	case "records:list":
		records, err := db.ListRecords()
		must(err)
		for _, record := range records {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\t%s\n",
				record.ID, record.FileName, record.InvoicePDF, record.PBEPDF, record.Status, record.UploadedAt)
		}
		fmt.Printf("records: %d\n", len(records))
	case "records:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", 0, "record id")
		all := fs.Bool("all", false, "delete every record")
		_ = fs.Parse(os.Args[2:])
		if *all {
			records, err := db.ListRecords()
			must(err)
			for _, record := range records {
				removeArtifacts(cfg, record)
			}
			n, err := db.DeleteAllRecords()
			must(err)
			fmt.Printf("deleted %d records\n", n)
			return
		}
		if *id == 0 {
			must(fmt.Errorf("--id or --all is required"))
		}
		record, err := db.GetRecord(*id)
		must(err)
		if record == nil {
			must(fmt.Errorf("record not found: id=%d", *id))
		}
		removeArtifacts(cfg, *record)
		must(db.DeleteRecord(*id))
		fmt.Printf("deleted record id=%d\n", *id)
	case "inspect":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "pdf file path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		info, err := render.Inspect(*file)
		must(err)
		fmt.Printf("pages=%d\n", info.Pages)
		fmt.Println(info.Text)
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", cfg.MailListenerProvider, "gmail|imap")
		label := fs.String("label", cfg.MailListenerLabel, "mailbox/label")
		max := fs.Int("max", cfg.MailListenerFetchMax, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawMailDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "mail:stage":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "", "gmail|imap (empty for any)")
		batch := fs.Int("batch", cfg.MailListenerStageBatch, "batch size")
		_ = fs.Parse(os.Args[2:])
		stage := connectors.NewStageService(db, cfg.FilesDir)
		result, err := stage.StagePending(*batch, strings.ToLower(strings.TrimSpace(*provider)))
		must(err)
		for _, name := range result.Staged {
			fmt.Printf("staged %s\n", name)
		}
		fmt.Printf("mail stage done messages=%d staged=%d skipped=%d\n", result.Messages, len(result.Staged), result.Skipped)
	case "mail:listen":
		s := listener.NewService(db, cfg)
		must(s.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func removeArtifacts(cfg config.Config, record internal.RecordRow) {
	for _, name := range []string{record.InvoicePDF, record.PBEPDF} {
		if name == "" {
			continue
		}
		if err := os.Remove(filepath.Join(cfg.FilesDir, name)); err != nil && !os.IsNotExist(err) {
			fmt.Printf("could not remove artifact %s: %v\n", name, err)
		}
	}
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func usage() {
	fmt.Println("usage: exportdocs <command>")
	fmt.Println("commands:")
	fmt.Println("  generate --file=orders.xlsx [--per-order]")
	fmt.Println("  records:list")
	fmt.Println("  records:delete --id=1 | --all")
	fmt.Println("  inspect --file=./files/invoice_A.pdf")
	fmt.Println("  mail:fetch --provider=gmail|imap --label=INBOX --max=20")
	fmt.Println("  mail:stage [--provider=gmail|imap] [--batch=20]")
	fmt.Println("  mail:listen")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
