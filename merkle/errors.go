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

// Package merkle implements the level-indexed, incrementally-grown Merkle
// tree used by the archive to bind committed files to a single root digest.
package merkle

import (
	"errors"
	"fmt"
)

// ErrTreeEmpty is returned by Root and ProofAt when the tree has no leaves.
var ErrTreeEmpty = errors.New("merkle: tree is empty")

// ErrTooManyLevels is returned when growing the tree would exceed MaxLevels.
var ErrTooManyLevels = errors.New("merkle: too many levels in the tree")

// NodeDoesNotExistError reports a reference to a node that has not been set.
type NodeDoesNotExistError struct {
	Level uint8
	Index int
}

func (e *NodeDoesNotExistError) Error() string {
	return fmt.Sprintf("merkle: node index %d does not exist at level %d", e.Index, e.Level)
}

// InvalidHashError reports an attempt to store an empty digest.
type InvalidHashError struct {
	Level uint8
	Index int
}

func (e *InvalidHashError) Error() string {
	return fmt.Sprintf("merkle: node hash at (level=%d, index=%d) is invalid", e.Level, e.Index)
}

// LevelFullError reports an append that would grow a level past the
// maximum width a tree bounded by MaxLevels can give it.
type LevelFullError struct {
	Level uint8
}

func (e *LevelFullError) Error() string {
	return fmt.Sprintf("merkle: level %d is full", e.Level)
}
