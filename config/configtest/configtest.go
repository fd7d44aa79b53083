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

// Package configtest builds config.Configs for use in other packages'
// tests, the way net/http/httptest builds servers: it depends on
// "testing" so the main config package doesn't have to.
package configtest

import (
	"path/filepath"
	"testing"

	"github.com/mrklar-dev/mrklar/config"
)

// Default returns a config.Config rooted at a fresh t.TempDir(), with its
// directories already created. DbDir and FilesDir are distinct
// subdirectories, exercising the same independence a real deployment has.
// Callers don't need to clean up.
func Default(tb testing.TB) *config.Config {
	tb.Helper()
	root := tb.TempDir()
	cfg := config.Default(filepath.Join(root, "db"), filepath.Join(root, "files"))
	if err := cfg.CreateDirs(); err != nil {
		tb.Fatalf("config.CreateDirs: %v", err)
	}
	return cfg
}
