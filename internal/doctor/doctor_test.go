package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenPecha/botok-go/internal/doctor"
)

// packDir lays out baseDir/name/dictionary for the pack checks.
func packDir(t *testing.T, name string) string {
	t.Helper()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, name, "dictionary"), 0o755); err != nil {
		t.Fatalf("mkdir pack: %v", err)
	}
	return base
}

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		PacksBaseDir: packDir(t, "general"),
		PackName:     "general",
		LoadIndex:    func() (int, error) { return 42, nil },
		Tokenize:     func(string) (int, error) { return 3, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "42 words") {
		t.Error("output should report the dictionary word count")
	}
}

// ---------------------------------------------------------------------------
// pack missing
// ---------------------------------------------------------------------------

func TestRun_MissingPackFails(t *testing.T) {
	cfg := doctor.Config{
		PacksBaseDir: t.TempDir(),
		PackName:     "general",
		LoadIndex:    func() (int, error) { return 42, nil },
		Tokenize:     func(string) (int, error) { return 3, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when the pack is not on disk")
	}

	if !hasFailureContaining(result.Failures(), "pack") {
		t.Errorf("expected failure mentioning the pack, got: %v", result.Failures())
	}
}

func TestRun_MissingBaseDirFails(t *testing.T) {
	cfg := doctor.Config{
		PacksBaseDir: filepath.Join(t.TempDir(), "nope"),
		PackName:     "general",
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for a missing packs directory")
	}
}

func TestRun_SkipPacksSkipsPackChecks(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 1, nil },
		Tokenize:  func(string) (int, error) { return 1, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("skip-packs run should pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "skipped") {
		t.Error("output should mention skipped pack checks")
	}
}

// ---------------------------------------------------------------------------
// explicit dictionary files
// ---------------------------------------------------------------------------

func TestRun_MissingDictFileFails(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		DictFiles: []string{"/nonexistent/dictionary.tsv"},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for missing dictionary file")
	}

	if !hasFailureContaining(result.Failures(), "dictionary file") {
		t.Errorf("expected failure mentioning the dictionary file, got: %v", result.Failures())
	}
}

func TestRun_PresentDictFilePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.tsv")
	if err := os.WriteFile(path, []byte("བཀྲ་ཤིས\tNOUN\n"), 0o644); err != nil {
		t.Fatalf("write dict: %v", err)
	}

	cfg := doctor.Config{
		SkipPacks: true,
		DictFiles: []string{path},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected pass for present dictionary file; failures: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// index loading and sample tokenization
// ---------------------------------------------------------------------------

func TestRun_LoadErrorFails(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 0, sentinelError("load failed") },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when the index cannot be loaded")
	}
}

func TestRun_EmptyIndexFails(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 0, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for an empty dictionary index")
	}

	if !hasFailureContaining(result.Failures(), "empty") {
		t.Errorf("expected failure mentioning the empty index, got: %v", result.Failures())
	}
}

func TestRun_TokenizeErrorFails(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 10, nil },
		Tokenize:  func(string) (int, error) { return 0, sentinelError("tokenize failed") },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when sample tokenization errors")
	}
}

func TestRun_NoTokensFails(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 10, nil },
		Tokenize:  func(string) (int, error) { return 0, nil },
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when sample tokenization produces no tokens")
	}
}

func TestRun_SampleTextOverride(t *testing.T) {
	var got string
	cfg := doctor.Config{
		SkipPacks:  true,
		SampleText: "ཀ་བ།",
		Tokenize: func(text string) (int, error) {
			got = text
			return 2, nil
		},
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	if got != "ཀ་བ།" {
		t.Errorf("Tokenize received %q; want the configured sample text", got)
	}
}

func TestRun_DefaultSampleText(t *testing.T) {
	var got string
	cfg := doctor.Config{
		SkipPacks: true,
		Tokenize: func(text string) (int, error) {
			got = text
			return 3, nil
		},
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	if got != doctor.DefaultSampleText {
		t.Errorf("Tokenize received %q; want the default sample text", got)
	}
}

// ---------------------------------------------------------------------------
// output markers
// ---------------------------------------------------------------------------

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		SkipPacks: true,
		LoadIndex: func() (int, error) { return 0, sentinelError("load failed") },
		Tokenize:  func(string) (int, error) { return 3, nil },
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	body := out.String()
	if !strings.Contains(body, doctor.PassMark) {
		t.Error("output should contain the pass marker")
	}

	if !strings.Contains(body, doctor.FailMark) {
		t.Error("output should contain the fail marker")
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
