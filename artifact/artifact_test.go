// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/fxc/fx"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		input, outDir, shader string
		want                  string
	}{
		{"basic.fx", "", "Basic", "basic.fx_Basic"},
		{"shaders/basic.fx", "", "vertex", "shaders/basic.fx_vertex"},
		{"shaders/basic.fx", "out", "Basic", filepath.Join("out", "basic.fx_Basic")},
	}
	for _, tt := range tests {
		if got := Prefix(tt.input, tt.outDir, tt.shader); got != tt.want {
			t.Errorf("Prefix(%q, %q, %q) = %q, want %q", tt.input, tt.outDir, tt.shader, got, tt.want)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// assertNoTemps fails if staging files were left behind in dir.
func assertNoTemps(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".fxc-") {
			t.Errorf("leftover staging file %s", e.Name())
		}
	}
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	files := []File{
		{Path: filepath.Join(dir, "a.fx_S"+VertexExt), Data: []byte("vertex")},
		{Path: filepath.Join(dir, "a.fx_S"+FragmentExt), Data: []byte("fragment")},
		{Path: filepath.Join(dir, "out", "a.fx_S"+MetaExt), Data: []byte("meta")},
	}
	if err := os.WriteFile(files[0].Path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Commit(files); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	for _, f := range files {
		if got := readFile(t, f.Path); got != string(f.Data) {
			t.Errorf("%s: got %q, want %q", f.Path, got, f.Data)
		}
	}
	assertNoTemps(t, dir)
	assertNoTemps(t, filepath.Join(dir, "out"))
}

func TestCommitRollback(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.fx_S"+MetaExt)
	if err := os.WriteFile(existing, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A non-empty directory cannot be replaced by a file.
	blocked := filepath.Join(dir, "a.fx_S"+FragmentExt)
	if err := os.MkdirAll(filepath.Join(blocked, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "a.fx_S"+VertexExt)
	files := []File{
		{Path: fresh, Data: []byte("vertex")},
		{Path: existing, Data: []byte("meta")},
		{Path: blocked, Data: []byte("fragment")},
	}

	err := Commit(files)
	if err == nil {
		t.Fatal("expected Commit to fail")
	}
	var fxErr *fx.Error
	if !errors.As(err, &fxErr) || fxErr.Kind != fx.ErrOutputIO {
		t.Fatalf("expected OutputIO error, got %v", err)
	}
	if !strings.Contains(fxErr.Message, blocked) {
		t.Errorf("error should name the failing path: %s", fxErr.Message)
	}

	if _, err := os.Stat(fresh); !os.IsNotExist(err) {
		t.Errorf("%s should have been removed", fresh)
	}
	if got := readFile(t, existing); got != "previous" {
		t.Errorf("existing file not restored: %q", got)
	}
	if info, err := os.Stat(blocked); err != nil || !info.IsDir() {
		t.Errorf("blocking directory was disturbed")
	}
	assertNoTemps(t, dir)
}

func TestCommitStagingFailure(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "file")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	files := []File{
		{Path: filepath.Join(dir, "ok"+MetaExt), Data: []byte("meta")},
		{Path: filepath.Join(parent, "x"+MetaExt), Data: []byte("meta")},
	}
	if err := Commit(files); err == nil {
		t.Fatal("expected Commit to fail")
	}
	if _, err := os.Stat(files[0].Path); !os.IsNotExist(err) {
		t.Errorf("nothing should be written when staging fails")
	}
	assertNoTemps(t, dir)
}

func TestCommitEmpty(t *testing.T) {
	if err := Commit(nil); err != nil {
		t.Errorf("Commit(nil) = %v", err)
	}
}
