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

import "errors"

var (
	// ErrEmpty is returned by Root and ProofAt when no file has been
	// committed yet.
	ErrEmpty = errors.New("archive: no files committed yet")

	// ErrIndexOutOfRange is returned when an index names a leaf that has
	// never been committed.
	ErrIndexOutOfRange = errors.New("archive: index out of range")
)
