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

package merkle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Tree is a level-indexed, incrementally-grown binary hash tree. Level 0
// holds the leaves; the tree always has at least one level, and its last
// level is the root once any leaf has been added.
type Tree struct {
	levels []*level
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{levels: []*level{newLevel(0)}}
}

// NumLeaves returns the number of leaves committed to the tree.
func (t *Tree) NumLeaves() int {
	return t.leaves().len()
}

// IsEmpty reports whether the tree holds no leaves.
func (t *Tree) IsEmpty() bool {
	return t.leaves().isEmpty()
}

func (t *Tree) height() uint8 {
	return uint8(len(t.levels))
}

func (t *Tree) leaves() *level {
	return t.levels[0]
}

func (t *Tree) root() *level {
	return t.levels[len(t.levels)-1]
}

// Root returns the current Merkle root, or ErrTreeEmpty if no leaf has been
// added yet.
func (t *Tree) Root() (Digest, error) {
	if t.IsEmpty() {
		return Digest{}, ErrTreeEmpty
	}
	return t.root().at(0)
}

// requiredFolds is the number of pair-hash levels that must sit above n
// leaves so the tree always commits to a single root, even a lone leaf
// (whose root is PairHash(leaf, NullDigest), not the leaf itself).
func requiredFolds(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// ensureHeight appends empty levels until the tree has exactly target rows.
func (t *Tree) ensureHeight(target uint8) error {
	if int(target) > MaxLevels {
		return ErrTooManyLevels
	}
	for t.height() < target {
		t.levels = append(t.levels, newLevel(t.height()))
	}
	return nil
}

// updateAt recomputes and propagates the pair hash rooted at leaf position
// pos up through every level below the root.
func (t *Tree) updateAt(pos int) error {
	for i := 0; i < int(t.height())-1; i++ {
		l := t.levels[i]
		hash, err := l.pairHashAt(pos)
		if err != nil {
			return err
		}
		parentPos := pos / 2
		if err := t.levels[i+1].setAt(parentPos, hash); err != nil {
			return err
		}
		pos = parentPos
	}
	return nil
}

// AddLeaf appends digest d as a new leaf and returns its stable index.
// setAt's own capacity check rejects the append before this tree is
// mutated, so a LevelFullError here always precedes, and makes moot, any
// ErrTooManyLevels that growing to fit the new leaf would otherwise hit.
func (t *Tree) AddLeaf(d Digest) (int, error) {
	if err := t.leaves().setAt(t.leaves().len(), d); err != nil {
		return 0, err
	}
	n := t.leaves().len()
	if err := t.ensureHeight(uint8(requiredFolds(n) + 1)); err != nil {
		return 0, err
	}
	idx := n - 1
	if err := t.updateAt(idx); err != nil {
		return 0, err
	}
	return idx, nil
}

// RemoveLast undoes the most recent AddLeaf. It is used to roll the
// in-memory tree back to its prior committed state when a downstream step
// of the commit sequence (rename, persist) fails after the leaf was
// already appended; see the archive package's commit rollback.
//
// It only ever needs to undo a single append, since the archive calls it
// immediately after a failed AddLeaf-then-commit sequence, before any
// further leaf can be added.
func (t *Tree) RemoveLast() {
	if t.IsEmpty() {
		return
	}
	t.leaves().popLast()
	n := t.leaves().len()
	if n == 0 {
		t.levels = t.levels[:1]
		return
	}
	target := uint8(requiredFolds(n) + 1)
	if target < t.height() {
		t.levels = t.levels[:target]
	}
	idx := n - 1
	for i, l := range t.levels {
		maxPos := idx >> uint(i)
		for l.len() > maxPos+1 {
			l.popLast()
		}
	}
	_ = t.updateAt(idx)
}

// ProofHash is one entry of an inclusion proof: a sibling digest tagged
// with the side it occupies relative to the node being folded.
type ProofHash struct {
	Left bool
	Hash Digest
}

// Proof is an ordered list of sibling digests together with the root they
// commit to.
type Proof struct {
	Root   Digest
	Hashes []ProofHash
}

// ProofAt computes the inclusion proof for the leaf at index under the
// tree's current state.
func (t *Tree) ProofAt(index int) (Proof, error) {
	if t.IsEmpty() {
		return Proof{}, ErrTreeEmpty
	}
	if index < 0 || index >= t.NumLeaves() {
		return Proof{}, &NodeDoesNotExistError{Level: 0, Index: index}
	}

	var hashes []ProofHash
	pos := index
	for i := 0; i < int(t.height())-1; i++ {
		l := t.levels[i]
		sib := pos + 1
		if pos%2 != 0 {
			sib = pos - 1
		}
		switch {
		case sib >= l.len():
			hashes = append(hashes, ProofHash{Left: false, Hash: NullDigest})
		case sib == pos+1:
			h, err := l.at(sib)
			if err != nil {
				return Proof{}, err
			}
			hashes = append(hashes, ProofHash{Left: false, Hash: h})
		default:
			h, err := l.at(sib)
			if err != nil {
				return Proof{}, err
			}
			hashes = append(hashes, ProofHash{Left: true, Hash: h})
		}
		pos /= 2
	}

	root, err := t.Root()
	if err != nil {
		return Proof{}, err
	}
	return Proof{Root: root, Hashes: hashes}, nil
}

// Verify reports whether input's digest folds, through p's sibling chain,
// to p's embedded root.
func (p Proof) Verify(input Digest) bool {
	if len(p.Hashes) == 0 {
		return false
	}
	running := input
	for _, h := range p.Hashes {
		if h.Left {
			running = PairHash(h.Hash, running)
		} else {
			running = PairHash(running, h.Hash)
		}
	}
	return running == p.Root
}

// EncodeBin serialises the proof as: root (32 bytes), hash count (uint32
// big-endian), then for each hash a 1-byte left/right tag followed by its
// 32-byte digest.
func (p Proof) EncodeBin() []byte {
	buf := make([]byte, 0, DigestSize+4+len(p.Hashes)*(1+DigestSize))
	buf = append(buf, p.Root[:]...)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(p.Hashes)))
	buf = append(buf, countBuf[:]...)
	for _, h := range p.Hashes {
		if h.Left {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = append(buf, h.Hash[:]...)
	}
	return buf
}

// DecodeProof reverses EncodeBin.
func DecodeProof(data []byte) (Proof, error) {
	if len(data) < DigestSize+4 {
		return Proof{}, fmt.Errorf("merkle: proof too short (%d bytes)", len(data))
	}
	var p Proof
	copy(p.Root[:], data[:DigestSize])
	rest := data[DigestSize:]
	count := binary.BigEndian.Uint32(rest[:4])
	rest = rest[4:]
	p.Hashes = make([]ProofHash, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(rest) < 1+DigestSize {
			return Proof{}, fmt.Errorf("merkle: truncated proof at entry %d", i)
		}
		left := rest[0] == 1
		var h Digest
		copy(h[:], rest[1:1+DigestSize])
		p.Hashes = append(p.Hashes, ProofHash{Left: left, Hash: h})
		rest = rest[1+DigestSize:]
	}
	return p, nil
}

// Encode serialises the whole tree: level count (1 byte), then per level
// its ordinal (1 byte), digest count (uint32 big-endian) and that many
// 32-byte digests, in level order.
func (t *Tree) Encode() []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(len(t.levels)))
	for _, l := range t.levels {
		buf.WriteByte(l.ordinal)
		var countBuf [4]byte
		binary.BigEndian.PutUint32(countBuf[:], uint32(l.len()))
		buf.Write(countBuf[:])
		for _, h := range l.hashes {
			buf.Write(h[:])
		}
	}
	return buf.Bytes()
}

// Decode reverses Encode.
func Decode(data []byte) (*Tree, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("merkle: empty tree encoding")
	}
	numLevels := int(data[0])
	data = data[1:]
	t := &Tree{levels: make([]*level, 0, numLevels)}
	for i := 0; i < numLevels; i++ {
		if len(data) < 1+4 {
			return nil, fmt.Errorf("merkle: truncated tree encoding at level %d", i)
		}
		ordinal := data[0]
		count := binary.BigEndian.Uint32(data[1:5])
		data = data[5:]
		l := newLevel(ordinal)
		l.hashes = make([]Digest, 0, count)
		for j := uint32(0); j < count; j++ {
			if len(data) < DigestSize {
				return nil, fmt.Errorf("merkle: truncated tree encoding at level %d entry %d", i, j)
			}
			var h Digest
			copy(h[:], data[:DigestSize])
			l.hashes = append(l.hashes, h)
			data = data[DigestSize:]
		}
		t.levels = append(t.levels, l)
	}
	if len(t.levels) == 0 {
		t.levels = []*level{newLevel(0)}
	}
	return t, nil
}
