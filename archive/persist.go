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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrklar-dev/mrklar/merkle"
	"k8s.io/klog/v2"
)

// encodeState serialises the entries vector followed by the tree: entry
// count (uint32 BE), then per entry a length-prefixed filename and its
// 32-byte digest, then the tree's own self-describing encoding.
func encodeState(entries []Entry, tree *merkle.Tree) []byte {
	buf := &bytes.Buffer{}
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(entries)))
	buf.Write(countBuf[:])
	for _, e := range entries {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(e.Filename)))
		buf.Write(lenBuf[:])
		buf.WriteString(e.Filename)
		buf.Write(e.Digest[:])
	}
	buf.Write(tree.Encode())
	return buf.Bytes()
}

// decodeState reverses encodeState.
func decodeState(data []byte) ([]Entry, *merkle.Tree, error) {
	r := bytes.NewReader(data)
	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, nil, fmt.Errorf("archive: reading entry count: %w", err)
	}
	count := binary.BigEndian.Uint32(countBuf[:])
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		var lenBuf [4]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, nil, fmt.Errorf("archive: reading filename length at entry %d: %w", i, err)
		}
		nameLen := binary.BigEndian.Uint32(lenBuf[:])
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, nil, fmt.Errorf("archive: reading filename at entry %d: %w", i, err)
		}
		var digest merkle.Digest
		if _, err := io.ReadFull(r, digest[:]); err != nil {
			return nil, nil, fmt.Errorf("archive: reading digest at entry %d: %w", i, err)
		}
		entries = append(entries, Entry{Filename: string(name), Digest: digest})
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: reading tree encoding: %w", err)
	}
	tree, err := merkle.Decode(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: decoding tree: %w", err)
	}
	if tree.NumLeaves() != len(entries) {
		return nil, nil, fmt.Errorf("archive: corrupt state: %d entries but %d leaves", len(entries), tree.NumLeaves())
	}
	return entries, tree, nil
}

// saveTo atomically writes the archive's state to path: the new content is
// buffered through a temp file in the same directory, then renamed into
// place, so a crash mid-write never leaves a partial db.bin.
func saveTo(path string, entries []Entry, tree *merkle.Tree) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".db-*.tmp")
	if err != nil {
		return fmt.Errorf("archive: creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	w := bufio.NewWriter(tmp)
	if _, err := w.Write(encodeState(entries, tree)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: writing state: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: flushing state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("archive: syncing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("archive: closing temp state file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("archive: renaming state into place: %w", err)
	}
	klog.V(2).Infof("archive: wrote state to %s (%d entries)", path, len(entries))
	return nil
}

// loadFrom reads and decodes the archive's state from path. It returns
// (nil, nil, nil) if path does not exist, signalling a fresh archive.
func loadFrom(path string) ([]Entry, *merkle.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, nil, fmt.Errorf("archive: reading %s: %w", path, err)
	}
	entries, tree, err := decodeState(data)
	if err != nil {
		return nil, nil, err
	}
	klog.V(1).Infof("archive: loaded state from %s (%d entries)", path, len(entries))
	return entries, tree, nil
}
