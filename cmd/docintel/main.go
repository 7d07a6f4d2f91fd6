package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/common"
	"github.com/docuflow/docintel/internal/docsource"
	"github.com/docuflow/docintel/internal/entity"
	"github.com/docuflow/docintel/internal/export"
	"github.com/docuflow/docintel/internal/llm"
	"github.com/docuflow/docintel/internal/pipeline"
	"github.com/docuflow/docintel/internal/refresolve"
	"github.com/docuflow/docintel/internal/repository"
)

// inputEnvelope is the on-disk shape this command consumes: per-page texts
// plus, optionally, a pre-computed oracle field map for offline runs.
type inputEnvelope struct {
	Pages        []string        `json:"pages"`
	DocumentType string          `json:"document_type,omitempty"`
	Fields       json.RawMessage `json:"fields,omitempty"`
}

func loadEnvelope(path string) (*inputEnvelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var env inputEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, common.InvalidArgumentErrorf("decode input envelope: %v", err)
	}
	if len(env.Pages) == 0 {
		return nil, common.InvalidArgumentErrorf("input %s has no pages", path)
	}
	return &env, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	var (
		inPath   = flag.String("in", "", "input envelope JSON (pages + optional oracle fields)")
		outPath  = flag.String("out", "", "write the final record JSON here (default stdout)")
		xlsxPath = flag.String("xlsx", "", "also write an XLSX report here")
		useCache = flag.Bool("cache", false, "use the local extraction cache")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("usage: docintel -in document.json [-out record.json] [-xlsx report.xlsx]")
	}

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env, err := loadEnvelope(*inPath)
	if err != nil {
		log.Fatalf("loading input: %v", err)
	}

	doc := docsource.NewDocument(env.Pages)
	ctx = common.WithRequestID(ctx, uuid.New().String())
	ctx = common.WithDocumentID(ctx, doc.ContentHash())

	var oracle llm.Oracle
	if len(env.Fields) > 0 {
		dt, _ := constants.ParseDocumentType(env.DocumentType)
		oracle = &llm.StaticOracle{Type: dt, Fields: env.Fields}
	} else {
		oracle = llm.NewOpenAIOracle(llm.OpenAIConfig{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, nil)
	}

	var cache pipeline.Cache
	if *useCache {
		c, err := repository.OpenCache(cfg.Cache.Path, nil)
		if err != nil {
			log.Fatalf("opening extraction cache: %v", err)
		}
		defer func() { _ = c.Close() }()
		cache = c
	}

	resolver := refresolve.NewResolver(
		refresolve.Config{FuzzyThreshold: cfg.Resolver.FuzzyThreshold}, nil, nil)
	proc := pipeline.NewProcessor(nil, oracle, resolver, cache, nil)

	rec, err := proc.Process(ctx, doc)
	if err != nil {
		log.Fatalf("processing document: %v", err)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatalf("encoding record: %v", err)
	}
	if *outPath == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Fatalf("writing record: %v", err)
	}

	if *xlsxPath != "" {
		svc := export.NewService(nil)
		bs, err := svc.WriteRecordsXLSX([]*entity.ExtractedRecord{rec})
		if err != nil {
			log.Fatalf("building xlsx: %v", err)
		}
		if err := os.WriteFile(*xlsxPath, bs, 0o644); err != nil {
			log.Fatalf("writing xlsx: %v", err)
		}
	}

	log.Infow("done",
		"document_type", rec.DocumentType,
		"risk_score", rec.Risk.Score,
		"risk_level", rec.Risk.Level,
		"references", len(rec.References),
	)
}
