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

package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSMirror writes committed files through to a Cloud Storage bucket.
type GCSMirror struct {
	bucket string
	client *storage.Client
}

// NewGCSMirror builds a GCSMirror for bucket using application default
// credentials.
func NewGCSMirror(ctx context.Context, bucket string) (*GCSMirror, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: creating GCS client: %w", err)
	}
	return &GCSMirror{bucket: bucket, client: client}, nil
}

// Name implements Mirror.
func (m *GCSMirror) Name() string {
	return fmt.Sprintf("gs://%s", m.bucket)
}

// Put implements Mirror.
func (m *GCSMirror) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	w := m.client.Bucket(m.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("storage: gcs put %s/%s: %w", m.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: gcs put %s/%s: closing writer: %w", m.bucket, key, err)
	}
	return nil
}
