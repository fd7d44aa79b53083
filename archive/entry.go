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

// Package archive implements the content-integrity file store: a parallel
// vector of entries kept in lock-step with the leaves of a merkle.Tree,
// persisted to a single directory.
package archive

import "github.com/mrklar-dev/mrklar/merkle"

// Entry records the metadata committed alongside one leaf. Entries and
// tree leaves are kept in lock-step: entries[i] always describes the file
// whose digest is leaf i.
type Entry struct {
	Filename string
	Digest   merkle.Digest
}
