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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() on zero-value config should fail")
	}

	cfg = Default(t.TempDir(), t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on Default() = %v, want nil", err)
	}

	cfg = Default(t.TempDir(), "")
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject an empty FilesDir independently of DbDir")
	}

	cfg = Default(t.TempDir(), t.TempDir()).WithChannelCapacity(0)
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject a zero ChannelCapacity")
	}
}

func TestCreateDirs(t *testing.T) {
	cfg := Default(t.TempDir(), t.TempDir())
	if err := cfg.CreateDirs(); err != nil {
		t.Fatalf("CreateDirs: %v", err)
	}
	for _, dir := range []string{cfg.DbDir, cfg.FilesDbDir(), cfg.FilesTmpDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestPathLayout(t *testing.T) {
	cfg := Default("/var/lib/mrklar/db", "/var/lib/mrklar/files")
	if got, want := cfg.DbFile(), filepath.Join("/var/lib/mrklar/db", "db.bin"); got != want {
		t.Fatalf("DbFile() = %q, want %q", got, want)
	}
	if got, want := cfg.FilesDbDir(), "/var/lib/mrklar/files"; got != want {
		t.Fatalf("FilesDbDir() = %q, want %q", got, want)
	}
	if got, want := cfg.FilesTmpDir(), filepath.Join("/var/lib/mrklar/files", "tmp"); got != want {
		t.Fatalf("FilesTmpDir() = %q, want %q", got, want)
	}
}

func TestWithChaining(t *testing.T) {
	cfg := Default(t.TempDir(), t.TempDir()).WithAddr("0.0.0.0:9000").WithChannelCapacity(8).WithTracing(true)
	if cfg.Addr != "0.0.0.0:9000" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.ChannelCapacity != 8 {
		t.Fatalf("ChannelCapacity = %d", cfg.ChannelCapacity)
	}
	if !cfg.TracingEnabled {
		t.Fatal("TracingEnabled = false, want true")
	}
}

