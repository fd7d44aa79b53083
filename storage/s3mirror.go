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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Mirror writes committed files through to an S3 bucket.
type S3Mirror struct {
	bucket string
	client *s3.Client
}

// NewS3Mirror builds an S3Mirror for bucket using the default AWS
// credential chain (environment, shared config, instance role).
func NewS3Mirror(ctx context.Context, bucket string) (*S3Mirror, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: loading AWS config: %w", err)
	}
	return &S3Mirror{bucket: bucket, client: s3.NewFromConfig(cfg)}, nil
}

// Name implements Mirror.
func (m *S3Mirror) Name() string {
	return fmt.Sprintf("s3://%s", m.bucket)
}

// Put implements Mirror.
func (m *S3Mirror) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 put %s/%s: %w", m.bucket, key, err)
	}
	return nil
}
