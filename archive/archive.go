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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/mrklar-dev/mrklar/config"
	"github.com/mrklar-dev/mrklar/merkle"
	"github.com/mrklar-dev/mrklar/storage"
	"k8s.io/klog/v2"
)

// Archive is the content-integrity file store. A single Archive instance
// owns one sync.RWMutex guarding both the entry vector and the merkle
// tree: the two are updated together and must never be observed out of
// step with each other. Go's map and slice types are not safe for
// concurrent use on their own, so callers must always go through Archive
// rather than reaching into its fields — there is no container-level
// thread-safety to lean on here.
type Archive struct {
	mu      sync.RWMutex
	cfg     *config.Config
	tree    *merkle.Tree
	entries []Entry
	proofs  *proofCache
	index   *sqlEntryIndex

	// Mirrors receives every successfully committed file's bytes, in
	// addition to the primary on-disk copy; nil entries are skipped.
	// Open leaves it empty and nothing else in this module sets it.
	Mirrors []storage.Mirror
}

// Open loads an Archive from cfg.DbFile if it exists, or creates a fresh
// empty one. cfg's directories must already exist (see config.CreateDirs).
func Open(cfg *config.Config) (*Archive, error) {
	entries, tree, err := loadFrom(cfg.DbFile())
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = merkle.New()
	}

	a := &Archive{
		cfg:     cfg,
		tree:    tree,
		entries: entries,
		proofs:  newProofCache(),
	}
	if cfg.MySQLDSN != "" {
		idx, err := openSQLEntryIndex(cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("archive: opening entry index: %w", err)
		}
		a.index = idx
	}
	return a, nil
}

// Close releases any resources the archive holds open, such as a MySQL
// entry-index connection.
func (a *Archive) Close() error {
	if a.index != nil {
		return a.index.close()
	}
	return nil
}

// NumEntries returns the number of files committed to the archive.
func (a *Archive) NumEntries() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tree.NumLeaves()
}

// Root returns the archive's current Merkle root.
func (a *Archive) Root() (merkle.Digest, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	root, err := a.tree.Root()
	if err != nil {
		return merkle.Digest{}, ErrEmpty
	}
	return root, nil
}

// EntryAt returns the entry committed at index.
func (a *Archive) EntryAt(index int) (Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if index < 0 || index >= len(a.entries) {
		return Entry{}, ErrIndexOutOfRange
	}
	return a.entries[index], nil
}

// ProofAt returns the inclusion proof for the file committed at index.
func (a *Archive) ProofAt(index int) (merkle.Proof, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.tree.IsEmpty() {
		return merkle.Proof{}, ErrEmpty
	}
	if index < 0 || index >= a.tree.NumLeaves() {
		return merkle.Proof{}, ErrIndexOutOfRange
	}
	numLeaves := a.tree.NumLeaves()
	if p, ok := a.proofs.get(index, numLeaves); ok {
		return p, nil
	}
	p, err := a.tree.ProofAt(index)
	if err != nil {
		return merkle.Proof{}, err
	}
	a.proofs.put(index, numLeaves, p)
	return p, nil
}

// FilePath returns the on-disk path of the committed file at index.
func (a *Archive) FilePath(index int) string {
	return filepath.Join(a.cfg.FilesDbDir(), strconv.Itoa(index))
}

// Commit finalizes a staged upload: it appends digest as a new leaf,
// records filename as the corresponding entry, renames the staged file
// into place and persists the archive's state. If any step after the
// leaf append fails, the in-memory tree and entry vector are rolled back
// to their pre-commit state with merkle.Tree.RemoveLast, so the archive
// never observes len(entries) != tree.NumLeaves().
func (a *Archive) Commit(filename, stagedPath string, digest merkle.Digest) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index, err := a.tree.AddLeaf(digest)
	if err != nil {
		return 0, fmt.Errorf("archive: adding leaf: %w", err)
	}
	a.entries = append(a.entries, Entry{Filename: filename, Digest: digest})

	if err := a.finishCommit(index, filename, stagedPath, digest); err != nil {
		a.tree.RemoveLast()
		a.entries = a.entries[:len(a.entries)-1]
		return 0, err
	}
	return index, nil
}

func (a *Archive) finishCommit(index int, filename, stagedPath string, digest merkle.Digest) error {
	dest := a.FilePath(index)
	if err := os.Rename(stagedPath, dest); err != nil {
		return fmt.Errorf("archive: committing staged file: %w", err)
	}
	if err := saveTo(a.cfg.DbFile(), a.entries, a.tree); err != nil {
		// The rename already happened, so the file stays at dest as an
		// orphan; db.bin still holds the prior state, which is what a
		// future load returns, and the in-memory rollback matches it.
		return fmt.Errorf("archive: persisting state: %w", err)
	}
	if a.index != nil {
		if err := a.index.record(index, filename, digest); err != nil {
			klog.Warningf("archive: entry index write failed for %d: %v", index, err)
		}
	}
	for _, m := range a.Mirrors {
		if m == nil {
			continue
		}
		if err := mirrorFile(m, index, dest); err != nil {
			klog.Warningf("archive: mirror %s failed for entry %d: %v", m.Name(), index, err)
		}
	}
	klog.V(1).Infof("archive: committed entry %d (%s)", index, filename)
	return nil
}
