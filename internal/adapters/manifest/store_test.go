package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.trai.ch/labgen/internal/adapters/manifest"
	"go.trai.ch/labgen/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store := manifest.NewStore()

	stamp := domain.Stamp{
		Output:      filepath.Join(tmpDir, "lab.cfg"),
		Digest:      "0123456789abcdef",
		Records:     24,
		GeneratedAt: time.Now(),
	}

	if err := store.Put(stamp); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(stamp.Output)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Digest != stamp.Digest {
		t.Errorf("expected Digest %q, got %q", stamp.Digest, got.Digest)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, domain.StateDir, domain.StateFile)); err != nil {
		t.Errorf("expected stamp file beside the output: %v", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := manifest.NewStore()

	got, err := store.Get(filepath.Join(t.TempDir(), "lab.cfg"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil stamp, got %+v", got)
	}
}

func TestStore_Persistence(t *testing.T) {
	output := filepath.Join(t.TempDir(), "lab.cfg")

	// 1. Create store and save data
	if err := manifest.NewStore().Put(domain.Stamp{Output: output, Digest: "xyz"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// 2. A fresh store reads the same stamp file
	got, err := manifest.NewStore().Get(output)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Digest != "xyz" {
		t.Errorf("expected Digest %q, got %q", "xyz", got.Digest)
	}
}

func TestStore_SeparateDirectoriesKeepSeparateStamps(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a", "lab.cfg")
	b := filepath.Join(tmpDir, "b", "lab.cfg")

	store := manifest.NewStore()
	if err := store.Put(domain.Stamp{Output: a, Digest: "aaa"}); err != nil {
		t.Fatalf("Put a failed: %v", err)
	}
	if err := store.Put(domain.Stamp{Output: b, Digest: "bbb"}); err != nil {
		t.Fatalf("Put b failed: %v", err)
	}

	got, err := manifest.NewStore().Get(a)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Digest != "aaa" {
		t.Errorf("expected stamp with digest aaa, got %+v", got)
	}
}

func TestStore_FoundFromAnyWorkingDirectory(t *testing.T) {
	labDir := t.TempDir()
	elsewhere := t.TempDir()

	t.Chdir(labDir)
	if err := manifest.NewStore().Put(domain.Stamp{Output: "lab.cfg", Digest: "abc"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	t.Chdir(elsewhere)
	got, err := manifest.NewStore().Get(filepath.Join(labDir, "lab.cfg"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Digest != "abc" {
		t.Errorf("expected stamp with digest abc, got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(elsewhere, domain.StateDir)); !os.IsNotExist(err) {
		t.Errorf("expected no state directory in the working directory, got %v", err)
	}
}

func TestStore_EquivalentPathsShareStamp(t *testing.T) {
	t.Chdir(t.TempDir())

	store := manifest.NewStore()
	if err := store.Put(domain.Stamp{Output: "./labs/../lab.cfg", Digest: "abc"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("lab.cfg")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Digest != "abc" {
		t.Errorf("expected stamp with digest abc, got %+v", got)
	}
}

func TestStore_PutWithoutOutput(t *testing.T) {
	if err := manifest.NewStore().Put(domain.Stamp{Digest: "abc"}); err == nil {
		t.Fatal("expected error for stamp without output")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	stateDir := filepath.Join(tmpDir, domain.StateDir)
	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, domain.StateFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := manifest.NewStore().Get(filepath.Join(tmpDir, "lab.cfg")); err == nil {
		t.Fatal("expected error for corrupt store")
	}
}

func TestStore_OmitZero(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "lab.cfg")

	if err := manifest.NewStore().Put(domain.Stamp{Output: output}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(domain.StatePathFor(output))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, "digest") {
		t.Error("JSON should not contain 'digest' for zero value")
	}
	if strings.Contains(jsonStr, "generated_at") {
		t.Error("JSON should not contain 'generated_at' for zero value")
	}
	if !strings.Contains(jsonStr, "output") {
		t.Error("JSON should contain 'output'")
	}
}
