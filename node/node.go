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

// Package node wires a Config to its Archive, the unit the rest of the
// process builds on.
package node

import (
	"fmt"

	"github.com/mrklar-dev/mrklar/archive"
	"github.com/mrklar-dev/mrklar/config"
)

// Node holds one archive's configuration and open state.
type Node struct {
	Config  *config.Config
	Archive *archive.Archive
}

// Open validates cfg, creates its directories if needed, and opens (or
// creates) the archive it names.
func Open(cfg *config.Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	if err := cfg.CreateDirs(); err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	db, err := archive.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &Node{Config: cfg, Archive: db}, nil
}

// Close releases the node's resources.
func (n *Node) Close() error {
	return n.Archive.Close()
}
