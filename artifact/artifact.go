// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package artifact names and writes compiler output files.
//
// All files of one compilation are committed together: they are staged
// next to their targets, then renamed into place. If any step fails,
// files already moved into place are removed and whatever they replaced
// is restored, so a failed compile leaves the output directory as it was.
package artifact

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gogpu/fxc/fx"
)

// File extensions of the generated artifacts.
const (
	VertexExt   = ".vert.glsl"
	FragmentExt = ".frag.glsl"
	MetaExt     = ".meta"
)

// File is one output file.
type File struct {
	Path string
	Data []byte
}

// Prefix returns the path prefix shared by the artifacts of shader. With
// an empty outDir the prefix is input followed by "_" and the shader name,
// so artifacts land next to the source. Otherwise they go to outDir.
func Prefix(input, outDir, shader string) string {
	if outDir == "" {
		return input + "_" + shader
	}
	return filepath.Join(outDir, filepath.Base(input)+"_"+shader)
}

// staged tracks one file through a commit.
type staged struct {
	file   File
	temp   string
	backup string
	placed bool
}

// Commit writes every file or none of them.
func Commit(files []File) error {
	stages := make([]*staged, 0, len(files))

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			discard(stages)
			return outputError(f.Path, err)
		}
		s := &staged{file: f, temp: tempName(dir, "tmp")}
		stages = append(stages, s)
		if err := os.WriteFile(s.temp, f.Data, 0o644); err != nil {
			discard(stages)
			return outputError(f.Path, err)
		}
	}

	for _, s := range stages {
		if err := s.place(); err != nil {
			rollback(stages)
			return outputError(s.file.Path, err)
		}
	}

	for _, s := range stages {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
	}
	return nil
}

// place moves the staged file into position, keeping an existing regular
// file aside so it can be restored.
func (s *staged) place() error {
	if info, err := os.Lstat(s.file.Path); err == nil && info.Mode().IsRegular() {
		backup := tempName(filepath.Dir(s.file.Path), "bak")
		if err := os.Rename(s.file.Path, backup); err != nil {
			return err
		}
		s.backup = backup
	}
	if err := os.Rename(s.temp, s.file.Path); err != nil {
		return err
	}
	s.placed = true
	return nil
}

// rollback undoes placed files in reverse order and drops staged ones.
func rollback(stages []*staged) {
	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		if s.placed {
			_ = os.Remove(s.file.Path)
		} else {
			_ = os.Remove(s.temp)
		}
		if s.backup != "" {
			_ = os.Rename(s.backup, s.file.Path)
		}
	}
}

func discard(stages []*staged) {
	for _, s := range stages {
		_ = os.Remove(s.temp)
	}
}

func tempName(dir, ext string) string {
	return filepath.Join(dir, ".fxc-"+uuid.NewString()+"."+ext)
}

func outputError(path string, err error) error {
	var pathErr *os.PathError
	var linkErr *os.LinkError
	switch {
	case errors.As(err, &pathErr):
		err = pathErr.Err
	case errors.As(err, &linkErr):
		err = linkErr.Err
	}
	return fx.NewErrorf(fx.ErrOutputIO, "cannot write %s: %v", path, err)
}
