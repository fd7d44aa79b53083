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

// Package config holds the on-disk layout and runtime knobs shared by the
// node, archive and rpcapi packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dbFileName = "db.bin"
	tmpDirName = "tmp"

	// DefaultChannelCapacity bounds how many file chunks a Download holds
	// between the goroutine reading the committed file and the RPC stream.
	DefaultChannelCapacity = 4
)

// Config is the node's persistent and runtime configuration.
type Config struct {
	// Addr is the host:port the gRPC server listens on.
	Addr string

	// DbDir is the directory holding db.bin, the serialized tree and
	// entry index. Independently configured and validated from FilesDir.
	DbDir string

	// FilesDir is the directory holding one file per committed entry,
	// plus its tmp subdirectory for in-progress uploads. Independently
	// configured and validated from DbDir, so operators can put the
	// (usually much larger) file bodies on different storage than the
	// small, latency-sensitive db.bin.
	FilesDir string

	// ChannelCapacity bounds the backpressure channel between an archive
	// read and the RPC stream writing it out.
	ChannelCapacity int

	// TracingEnabled turns on span emission around RPC handlers.
	TracingEnabled bool

	// S3Bucket names an S3 bucket for storage.S3Mirror. It is only
	// stored: no mirror is built from it, so setting it mirrors nothing.
	S3Bucket string

	// GCSBucket names a Cloud Storage bucket for storage.GCSMirror. It is
	// only stored: no mirror is built from it, so setting it mirrors nothing.
	GCSBucket string

	// MySQLDSN, when non-empty, records every committed entry in MySQL in
	// addition to the in-memory slice.
	MySQLDSN string
}

// Default returns a Config with the node's standard defaults, holding
// db.bin under dbDir and committed file bodies under filesDir.
func Default(dbDir, filesDir string) *Config {
	return &Config{
		Addr:            "127.0.0.1:50051",
		DbDir:           dbDir,
		FilesDir:        filesDir,
		ChannelCapacity: DefaultChannelCapacity,
	}
}

// WithAddr sets the listen address and returns c for chaining.
func (c *Config) WithAddr(addr string) *Config {
	c.Addr = addr
	return c
}

// WithChannelCapacity sets the backpressure channel size and returns c for
// chaining.
func (c *Config) WithChannelCapacity(n int) *Config {
	c.ChannelCapacity = n
	return c
}

// WithTracing enables or disables RPC span emission and returns c for
// chaining.
func (c *Config) WithTracing(enabled bool) *Config {
	c.TracingEnabled = enabled
	return c
}

// DbFile is the path to the serialized archive state.
func (c *Config) DbFile() string {
	return filepath.Join(c.DbDir, dbFileName)
}

// FilesDbDir holds one file per committed entry, named by its leaf index.
func (c *Config) FilesDbDir() string {
	return c.FilesDir
}

// FilesTmpDir holds files mid-upload, before they are renamed into
// FilesDbDir on commit.
func (c *Config) FilesTmpDir() string {
	return filepath.Join(c.FilesDir, tmpDirName)
}

// Validate checks the configuration is internally consistent. DbDir and
// FilesDir are validated independently: a server should refuse to start
// with either missing, even though most deployments point them at
// subdirectories of the same volume.
func (c *Config) Validate() error {
	if c.DbDir == "" {
		return fmt.Errorf("config: DbDir must not be empty")
	}
	if c.FilesDir == "" {
		return fmt.Errorf("config: FilesDir must not be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("config: Addr must not be empty")
	}
	if c.ChannelCapacity <= 0 {
		return fmt.Errorf("config: ChannelCapacity must be positive, got %d", c.ChannelCapacity)
	}
	return nil
}

// CreateDirs makes DbDir, FilesDbDir and FilesTmpDir if they don't exist.
func (c *Config) CreateDirs() error {
	for _, dir := range []string{c.DbDir, c.FilesDbDir(), c.FilesTmpDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: creating %s: %w", dir, err)
		}
	}
	return nil
}
