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
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mrklar-dev/mrklar/merkle"
)

// sqlEntryIndex mirrors the entry vector into MySQL, giving operators a
// queryable index (by filename, by commit time) alongside the archive's
// own in-memory vector, which remains the source of truth for proofs.
type sqlEntryIndex struct {
	db *sql.DB
}

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS mrklar_entries (
	leaf_index BIGINT PRIMARY KEY,
	filename   VARCHAR(1024) NOT NULL,
	digest     BINARY(32) NOT NULL,
	committed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

func openSQLEntryIndex(dsn string) (*sqlEntryIndex, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: opening mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: pinging mysql: %w", err)
	}
	if _, err := db.Exec(createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: creating entries table: %w", err)
	}
	return &sqlEntryIndex{db: db}, nil
}

func (s *sqlEntryIndex) record(index int, filename string, digest merkle.Digest) error {
	_, err := s.db.Exec(
		`INSERT INTO mrklar_entries (leaf_index, filename, digest) VALUES (?, ?, ?)`,
		index, filename, digest[:],
	)
	if err != nil {
		return fmt.Errorf("archive: recording entry %d: %w", index, err)
	}
	return nil
}

func (s *sqlEntryIndex) close() error {
	return s.db.Close()
}
