// Command quarry is the entry point for the document retrieval CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quarry-labs/quarry/internal/access"
	configfile "github.com/quarry-labs/quarry/internal/adapters/driven/config/file"
	"github.com/quarry-labs/quarry/internal/adapters/driven/corpus/filesystem"
	"github.com/quarry-labs/quarry/internal/adapters/driven/generator/extractive"
	"github.com/quarry-labs/quarry/internal/adapters/driven/generator/ollama"
	"github.com/quarry-labs/quarry/internal/adapters/driven/snapshot/sqlite"
	"github.com/quarry-labs/quarry/internal/adapters/driving/cli"
	"github.com/quarry-labs/quarry/internal/chunker"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
	"github.com/quarry-labs/quarry/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfgPath := os.Getenv("QUARRY_CONFIG")
	if cfgPath == "" {
		var err error
		cfgPath, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(cfgPath)
	if err != nil {
		return err
	}

	corpus := filesystem.NewSource(cfg.Corpus.Dir)

	snapshots, err := sqlite.NewStore(cfg.Snapshot.Path)
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg.Generator)
	if err != nil {
		return err
	}

	ch := chunker.New(
		chunker.WithChunkSize(cfg.Chunker.Size),
		chunker.WithOverlap(cfg.Chunker.Overlap),
	)

	indexes := services.NewIndexManager(corpus, snapshots, ch)
	querier := services.NewQuerier(indexes, access.New(cfg.AccessPolicy()), generator)

	cli.SetIndexService(indexes)
	cli.SetQueryService(querier)
	cli.SetCorpusDir(cfg.Corpus.Dir)
	cli.SetGeneratorName(generator.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}

func buildGenerator(cfg configfile.GeneratorConfig) (driven.AnswerGenerator, error) {
	switch cfg.Kind {
	case "extractive":
		return extractive.NewGenerator(0), nil
	case "ollama":
		return ollama.NewGenerator(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown generator kind %q", cfg.Kind)
	}
}
