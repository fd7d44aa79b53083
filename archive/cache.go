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
	"github.com/hashicorp/golang-lru/v2"
	"github.com/mrklar-dev/mrklar/merkle"
)

// defaultProofCacheSize bounds the number of inclusion proofs kept warm.
// Proofs are keyed by (index, tree size at computation time), since a
// later commit changes every proof whose path runs through a newly
// populated null-padding slot.
const defaultProofCacheSize = 4096

type proofCacheKey struct {
	index    int
	numLeafs int
}

// proofCache memoizes recently computed inclusion proofs.
type proofCache struct {
	lru *lru.Cache[proofCacheKey, merkle.Proof]
}

func newProofCache() *proofCache {
	c, err := lru.New[proofCacheKey, merkle.Proof](defaultProofCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// defaultProofCacheSize never is.
		panic(err)
	}
	return &proofCache{lru: c}
}

func (c *proofCache) get(index, numLeaves int) (merkle.Proof, bool) {
	return c.lru.Get(proofCacheKey{index: index, numLeafs: numLeaves})
}

func (c *proofCache) put(index, numLeaves int, p merkle.Proof) {
	c.lru.Add(proofCacheKey{index: index, numLeafs: numLeaves}, p)
}
