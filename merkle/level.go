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

import "math"

// MaxLevels bounds the tree height. A tree this tall can index up to 2^63
// leaves, comfortably beyond any archive built from a 64-bit index space.
const MaxLevels = 64

// levelCapacity is the widest a level at ordinal can ever grow while the
// tree's height stays within MaxLevels: each level up halves the number of
// nodes the level below it can justify. The leaf level's true bound (2^63)
// overflows a signed int, so it's clamped to math.MaxInt, which no slice
// will ever reach anyway.
func levelCapacity(ordinal uint8) int {
	shift := MaxLevels - 1 - int(ordinal)
	if shift >= 63 {
		return math.MaxInt
	}
	return 1 << uint(shift)
}

// level is one row of the tree, ordered bottom (leaves, ordinal 0) to top
// (root, ordinal height-1). hashes[i] is the committed node at position i
// within the row.
type level struct {
	ordinal uint8
	hashes  []Digest
}

func newLevel(ordinal uint8) *level {
	return &level{ordinal: ordinal}
}

func (l *level) len() int {
	return len(l.hashes)
}

func (l *level) isEmpty() bool {
	return l.len() == 0
}

func (l *level) at(index int) (Digest, error) {
	if index < 0 || index >= l.len() {
		return Digest{}, &NodeDoesNotExistError{Level: l.ordinal, Index: index}
	}
	return l.hashes[index], nil
}

// popLast removes the most recently pushed digest, used to roll back a leaf
// append whose downstream commit step failed.
func (l *level) popLast() {
	if l.len() > 0 {
		l.hashes = l.hashes[:l.len()-1]
	}
}

// setAt overwrites the digest at index, or appends it if index is exactly
// the current length — the "overwrite-or-append" move that lets a single
// insertion update only the spine from the new leaf to the root, rather
// than rehashing the whole tree.
func (l *level) setAt(index int, d Digest) error {
	if d.IsNull() {
		return &InvalidHashError{Level: l.ordinal, Index: index}
	}
	switch {
	case index == l.len():
		if l.len() >= levelCapacity(l.ordinal) {
			return &LevelFullError{Level: l.ordinal}
		}
		l.hashes = append(l.hashes, d)
	case index < l.len():
		l.hashes[index] = d
	default:
		return &NodeDoesNotExistError{Level: l.ordinal, Index: index}
	}
	return nil
}

// pairHashAt computes PairHash for the sibling pair bracketing pos,
// substituting NullDigest when the right sibling hasn't been written yet
// (an odd-length row).
func (l *level) pairHashAt(pos int) (Digest, error) {
	left, right := pos, pos+1
	if pos%2 != 0 {
		left, right = pos-1, pos
	}
	leftHash, err := l.at(left)
	if err != nil {
		return Digest{}, err
	}
	rightHash := NullDigest
	if right < l.len() {
		rightHash, err = l.at(right)
		if err != nil {
			return Digest{}, err
		}
	}
	return PairHash(leftHash, rightHash), nil
}
