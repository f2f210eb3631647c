package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/monkeytui/internal/config"
	"github.com/verte-zerg/monkeytui/internal/model"
	"github.com/verte-zerg/monkeytui/internal/passage"
)

func TestValidateConfig(t *testing.T) {
	valid := model.Config{PunctSet: ".", WeakFactor: 2}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]model.Config{
		"negative words": {Words: -1},
		"words and texts": {
			Words:     10,
			TextsPath: "texts.txt",
		},
		"caps range":      {CapsPct: 1.5},
		"punct range":     {PunctPct: -0.1},
		"empty punct set": {PunctPct: 0.5},
		"weak top":        {WeakTop: -1},
		"weak factor":     {WeakFactor: -1},
		"weak window":     {WeakWindow: -1},
	}
	for name, cfg := range cases {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestStatsConfig(t *testing.T) {
	cfg, err := statsConfig(" Retro ", "2024-02-01", 5, 10, 3)
	if err != nil {
		t.Fatalf("stats config: %v", err)
	}
	if cfg.Variant != "retro" || cfg.Last != 5 || cfg.Since == nil || cfg.Since.Month() != 2 {
		t.Fatalf("unexpected stats config: %+v", cfg)
	}
	if _, err := statsConfig("", "02/01/2024", 0, 10, 3); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := statsConfig("fancy", "", 0, 10, 3); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := statsConfig("", "", 0, 0, 3); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var variantName string
	var words int
	cmd.Flags().StringVar(&variantName, "variant", "classic", "")
	cmd.Flags().IntVar(&words, "words", 0, "")
	if err := cmd.Flags().Set("variant", "minimal"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	fileVariant := "retro"
	fileWords := 15
	applyStringConfig(cmd, "variant", &variantName, &fileVariant)
	applyIntConfig(cmd, "words", &words, &fileWords)
	if variantName != "minimal" {
		t.Fatalf("expected flag to win, got %q", variantName)
	}
	if words != 15 {
		t.Fatalf("expected config value, got %d", words)
	}
	applyIntConfig(cmd, "words", &words, nil)
	if words != 15 {
		t.Fatalf("expected nil config to leave value, got %d", words)
	}
}

func TestBuildCatalogBuiltin(t *testing.T) {
	catalog, err := buildCatalog(context.Background(), model.Config{}, "classic", nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	if catalog.Len() != len(passage.Builtin()) {
		t.Fatalf("expected built-in passages, got %d", catalog.Len())
	}
}

func TestBuildCatalogFromTextsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.txt")
	if err := os.WriteFile(path, []byte("one two\n\nthree four\n"), 0o644); err != nil {
		t.Fatalf("write texts: %v", err)
	}
	catalog, err := buildCatalog(context.Background(), model.Config{TextsPath: path}, "classic", nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	if catalog.Len() != 2 || catalog.At(1).Text != "three four" {
		t.Fatalf("unexpected catalog: %v", catalog.Titles())
	}
}

type fakeWeakSource struct {
	window  int
	variant string
	aggs    []model.CharAggregate
}

func (f *fakeWeakSource) WeakChars(_ context.Context, window int, variant string) ([]model.CharAggregate, error) {
	f.window = window
	f.variant = variant
	return f.aggs, nil
}

func TestBuildCatalogWordsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatalf("write wordlist: %v", err)
	}
	src := &fakeWeakSource{aggs: []model.CharAggregate{{Char: "z", Correct: 1, Incorrect: 3}}}
	cfg := model.Config{
		Words:      4,
		Wordlist:   path,
		FocusWeak:  true,
		WeakTop:    3,
		WeakFactor: 2,
		WeakWindow: 7,
	}
	catalog, err := buildCatalog(context.Background(), cfg, "retro", src)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	if catalog.Len() != generatedPassages {
		t.Fatalf("expected %d passages, got %d", generatedPassages, catalog.Len())
	}
	if got := len(strings.Fields(catalog.At(0).Text)); got != 4 {
		t.Fatalf("expected 4 words, got %d", got)
	}
	if src.window != 7 || src.variant != "retro" {
		t.Fatalf("unexpected weak query: window=%d variant=%q", src.window, src.variant)
	}
}

func TestBuildCatalogMissingWordlist(t *testing.T) {
	cfg := model.Config{Words: 5, Wordlist: filepath.Join(t.TempDir(), "missing.txt")}
	_, err := buildCatalog(context.Background(), cfg, "classic", nil)
	if err == nil || !strings.Contains(err.Error(), "expected word list at") {
		t.Fatalf("expected word list error, got %v", err)
	}
}

func TestConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monkeytui", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Test.Variant != nil || cfg.Stats.Window != nil {
		t.Fatalf("expected commented template to leave values unset: %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("[test]\nvariant = \"retro\"\n"), 0o644); err != nil {
		t.Fatalf("overwrite config: %v", err)
	}
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Test.Variant == nil || *cfg.Test.Variant != "retro" {
		t.Fatalf("expected existing config to be kept")
	}
}

func TestEditorCommand(t *testing.T) {
	cases := []struct {
		editor string
		want   []string
	}{
		{"", []string{"vi", "/tmp/c.toml"}},
		{"code --wait", []string{"code", "--wait", "/tmp/c.toml"}},
		{`"/opt/My Editor/bin/edit" -n`, []string{"/opt/My Editor/bin/edit", "-n", "/tmp/c.toml"}},
	}
	for _, tc := range cases {
		got, err := editorCommand(tc.editor, "/tmp/c.toml")
		if err != nil {
			t.Fatalf("editor %q: %v", tc.editor, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("editor %q (-want +got):\n%s", tc.editor, diff)
		}
	}
	if _, err := editorCommand(`"unterminated`, "/tmp/c.toml"); err == nil {
		t.Fatalf("expected quoting error")
	}
}
