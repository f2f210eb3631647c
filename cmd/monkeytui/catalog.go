package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/monkeytui/internal/config"
	"github.com/verte-zerg/monkeytui/internal/generator"
	"github.com/verte-zerg/monkeytui/internal/model"
	"github.com/verte-zerg/monkeytui/internal/passage"
	"github.com/verte-zerg/monkeytui/internal/stats"
)

// generatedPassages is how many word passages are prepared per run.
const generatedPassages = 20

type weakCharSource interface {
	WeakChars(ctx context.Context, window int, variant string) ([]model.CharAggregate, error)
}

// buildCatalog assembles the passages for a run: built-in or file passages,
// or generated word passages when cfg.Words is set.
func buildCatalog(ctx context.Context, cfg model.Config, variantName string, weak weakCharSource) (*passage.Catalog, error) {
	if cfg.Words == 0 {
		return loadPassages(cfg.TextsPath)
	}

	path := resolveWordlistPath(cfg)
	words, err := passage.LoadWords(path)
	if err != nil {
		return nil, wordlistLoadError(path, err)
	}

	opts := generator.Options{
		Words:      cfg.Words,
		CapsPct:    cfg.CapsPct,
		PunctPct:   cfg.PunctPct,
		PunctSet:   []rune(cfg.PunctSet),
		WeakFactor: cfg.WeakFactor,
	}
	if cfg.FocusWeak {
		opts.Weak = loadWeakSet(ctx, weak, cfg, variantName)
	}
	items := generator.New().Passages(words, generatedPassages, opts)
	return passage.NewCatalog(items)
}

func loadPassages(path string) (*passage.Catalog, error) {
	if path == "" {
		return passage.NewCatalog(passage.Builtin())
	}
	items, err := passage.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texts: %w", err)
	}
	return passage.NewCatalog(items)
}

func loadWeakSet(ctx context.Context, src weakCharSource, cfg model.Config, variantName string) map[rune]struct{} {
	if src == nil {
		logErrln("history disabled; using normal generator")
		return nil
	}
	aggs, err := src.WeakChars(ctx, cfg.WeakWindow, variantName)
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return nil
	}
	set := stats.SelectWeakChars(aggs, cfg.WeakTop)
	if len(set) == 0 {
		logErrln("no stats available for weak-char focus yet; using normal generator")
	}
	return set
}

func resolveWordlistPath(cfg model.Config) string {
	if cfg.Wordlist != "" {
		return cfg.Wordlist
	}
	return config.DefaultWordlistPath()
}

func wordlistLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"Provide one word per line, or pass --wordlist <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
