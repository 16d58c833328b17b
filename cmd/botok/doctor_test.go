package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runDoctorCapture executes the doctor command with the given extra args
// and returns the combined stdout output and the execution error (if
// any). The doctor command writes directly to os.Stdout/os.Stderr, so we
// redirect those descriptors via a pipe for the duration of the call.
func runDoctorCapture(t testing.TB, args ...string) (stdout string, err error) {
	t.Helper()

	pr, pw, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("os.Pipe: %v", pipeErr)
	}
	origStdout := os.Stdout
	origStderr := os.Stderr
	os.Stdout = pw
	os.Stderr = pw // capture stderr into the same buffer for simplicity

	root := NewRootCmd()
	root.SetArgs(append([]string{"doctor"}, args...))
	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	os.Stderr = origStderr

	var buf bytes.Buffer
	if _, readErr := buf.ReadFrom(pr); readErr != nil {
		t.Fatalf("read pipe: %v", readErr)
	}
	pr.Close()

	return buf.String(), execErr
}

func TestDoctorPasses_WithDictFile(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.tsv")

	rows := "བཀྲ་ཤིས\tNOUN\t\tgreeting\t1000\nབདེ་ལེགས\tNOUN\n"
	if err := os.WriteFile(dict, []byte(rows), 0o644); err != nil {
		t.Fatalf("WriteFile dict: %v", err)
	}

	out, err := runDoctorCapture(t, "--dict", dict)
	if err != nil {
		t.Fatalf("doctor failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "doctor checks passed") {
		t.Errorf("expected 'doctor checks passed' in output, got:\n%s", out)
	}
	if !strings.Contains(out, "dictionary: file") {
		t.Errorf("expected dictionary source line in output, got:\n%s", out)
	}
}

func TestDoctorFails_MissingDictFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.tsv")

	out, err := runDoctorCapture(t, "--dict", missing)
	if err == nil {
		t.Fatalf("expected doctor to fail with missing dict file, but it passed\noutput:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(out), "fail") {
		t.Errorf("expected failure message in output, got:\n%s", out)
	}
}

func TestDoctorFails_MissingPack(t *testing.T) {
	// An existing base dir without the configured pack inside it.
	base := t.TempDir()

	out, err := runDoctorCapture(t, "--packs-base-dir", base)
	if err == nil {
		t.Fatalf("expected doctor to fail with missing pack, but it passed\noutput:\n%s", out)
	}
	if !strings.Contains(out, "packs fetch") {
		t.Errorf("expected fetch hint in output, got:\n%s", out)
	}
}

func TestDoctorPasses_WithPackOnDisk(t *testing.T) {
	base := t.TempDir()
	dictDir := filepath.Join(base, "general", "dictionary")
	if err := os.MkdirAll(dictDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	rows := "བཀྲ་ཤིས\tNOUN\t\tgreeting\t1000\n"
	if err := os.WriteFile(filepath.Join(dictDir, "words.tsv"), []byte(rows), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := runDoctorCapture(t, "--packs-base-dir", base)
	if err != nil {
		t.Fatalf("doctor failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "doctor checks passed") {
		t.Errorf("expected 'doctor checks passed' in output, got:\n%s", out)
	}
}
