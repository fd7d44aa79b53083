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

package archive

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"os"
	"path/filepath"

	"github.com/mrklar-dev/mrklar/config"
	"github.com/mrklar-dev/mrklar/internal/fsutil"
	"github.com/mrklar-dev/mrklar/merkle"
	"k8s.io/klog/v2"
)

// StagedFile is an in-progress upload: bytes written to it land in a temp
// file under the archive's tmp directory while a running SHA-256 digest
// accumulates. Neither the tree nor the entry vector are touched until
// Finish succeeds and the caller commits it.
type StagedFile struct {
	path string
	f    *os.File
	hash hash.Hash
}

// Stage creates a new StagedFile under the archive's tmp directory.
func Stage(cfg *config.Config) (*StagedFile, error) {
	name := fsutil.GenTmpFilename()
	path := filepath.Join(cfg.FilesTmpDir(), name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("archive: staging %s: %w", path, err)
	}
	return &StagedFile{path: path, f: f, hash: sha256.New()}, nil
}

// Write implements io.Writer, appending to the temp file and folding the
// bytes into the running digest.
func (s *StagedFile) Write(p []byte) (int, error) {
	if _, err := s.hash.Write(p); err != nil {
		return 0, err
	}
	return s.f.Write(p)
}

// Finish flushes and closes the temp file, returning its path and final
// digest. The file is left on disk at its temp path; the caller commits
// it into the archive with Archive.Commit, or discards it with Abort.
func (s *StagedFile) Finish() (string, merkle.Digest, error) {
	if err := s.f.Sync(); err != nil {
		return "", merkle.Digest{}, fmt.Errorf("archive: syncing staged file: %w", err)
	}
	if err := s.f.Close(); err != nil {
		return "", merkle.Digest{}, fmt.Errorf("archive: closing staged file: %w", err)
	}
	sum := s.hash.Sum(nil)
	digest, ok := merkle.DigestFromBytes(sum)
	if !ok {
		return "", merkle.Digest{}, fmt.Errorf("archive: unexpected digest length %d", len(sum))
	}
	return s.path, digest, nil
}

// Abort discards the staged file.
func (s *StagedFile) Abort() {
	s.f.Close()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		klog.Warningf("archive: removing staged file %s: %v", s.path, err)
	}
}
