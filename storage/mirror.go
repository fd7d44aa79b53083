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

// Package storage holds optional write-through mirrors for committed
// files: every configured mirror receives a copy of a file's bytes right
// after it lands in the primary on-disk store.
package storage

import (
	"context"
	"io"
)

// Mirror copies a committed file's bytes somewhere beyond the local
// files directory. Mirror failures are logged but never fail a commit:
// the primary on-disk copy and db.bin are the archive's source of truth.
type Mirror interface {
	Name() string
	Put(ctx context.Context, key string, r io.Reader, size int64) error
}
