// Copyright 2026 The Mrklar Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	if !DirExists(dir) {
		t.Fatal("DirExists should be true for an existing directory")
	}
	file := filepath.Join(dir, "f.txt")
	if FileExists(file) {
		t.Fatal("FileExists should be false before creation")
	}
	if err := os.WriteFile(file, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Fatal("FileExists should be true after creation")
	}
	if DirExists(file) {
		t.Fatal("DirExists should be false for a regular file")
	}
}

func TestGenTmpFilenameIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := GenTmpFilename()
		if seen[name] {
			t.Fatalf("GenTmpFilename produced a duplicate: %s", name)
		}
		seen[name] = true
	}
}

func TestFilesInDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	files, err := FilesInDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("FilesInDir returned %v, want 3 entries", files)
	}
}

func TestCreateExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	if err := CreateExclusive(path, []byte("payload")); err != nil {
		t.Fatalf("CreateExclusive: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("contents = %q, want %q", got, "payload")
	}
	if err := CreateExclusive(path, []byte("again")); err == nil {
		t.Fatal("CreateExclusive should fail when the target already exists")
	}
}
