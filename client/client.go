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

// Package client is a thin wrapper over rpcapi.FileApiClient offering the
// operations a CLI or another Go program wants: count, root, upload,
// verified download, and proof lookup.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mrklar-dev/mrklar/merkle"
	"github.com/mrklar-dev/mrklar/rpcapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const uploadChunkSize = 64 * 1024

// Client talks to one mrklar node.
type Client struct {
	conn *grpc.ClientConn
	api  rpcapi.FileApiClient
}

// Dial connects to a node at addr.
func Dial(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("client: dialing %s: %w", addr, err)
	}
	return &Client{conn: conn, api: rpcapi.NewFileApiClient(conn)}, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Count returns the number of files committed to the archive.
func (c *Client) Count(ctx context.Context) (uint64, error) {
	resp, err := c.api.Count(ctx, &rpcapi.Empty{})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Root returns the archive's current Merkle root. It fails with the
// server's NotFound status if the archive has no committed files yet.
func (c *Client) Root(ctx context.Context) (merkle.Digest, error) {
	resp, err := c.api.Root(ctx, &rpcapi.Empty{})
	if err != nil {
		return merkle.Digest{}, err
	}
	d, valid := merkle.DigestFromBytes(resp.Root)
	if !valid {
		return merkle.Digest{}, fmt.Errorf("client: server returned a malformed root (%d bytes)", len(resp.Root))
	}
	return d, nil
}

// Proof fetches the inclusion proof for the file at index.
func (c *Client) Proof(ctx context.Context, index uint64) (merkle.Proof, error) {
	stream, err := c.api.Proof(ctx, &rpcapi.FileIndex{Index: index})
	if err != nil {
		return merkle.Proof{}, fmt.Errorf("client: opening proof stream: %w", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		return merkle.Proof{}, err
	}
	proof, err := merkle.DecodeProof(resp.Proof)
	if err != nil {
		return merkle.Proof{}, fmt.Errorf("client: decoding proof: %w", err)
	}
	return proof, nil
}

// Upload streams r's contents to the archive under filename and returns
// the committed index and the archive's resulting root. The protocol
// requires the declared digest before any chunk, so r is buffered and
// hashed locally before the stream opens; callers wanting true streaming
// uploads of huge files should write to a local temp file first and pass
// that as r.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (index uint64, root merkle.Digest, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, merkle.Digest{}, fmt.Errorf("client: reading upload source: %w", err)
	}
	digest := merkle.Sum(data)

	stream, err := c.api.Upload(ctx)
	if err != nil {
		return 0, merkle.Digest{}, fmt.Errorf("client: opening upload stream: %w", err)
	}
	if err := stream.Send(&rpcapi.UploadRequest{Metadata: &rpcapi.UploadMetadata{Filename: filename}}); err != nil {
		return 0, merkle.Digest{}, fmt.Errorf("client: sending upload metadata: %w", err)
	}
	if err := stream.Send(&rpcapi.UploadRequest{Sha256: digest.Bytes()}); err != nil {
		return 0, merkle.Digest{}, fmt.Errorf("client: sending upload digest: %w", err)
	}
	for off := 0; off < len(data); off += uploadChunkSize {
		end := off + uploadChunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := stream.Send(&rpcapi.UploadRequest{Chunk: data[off:end]}); err != nil {
			return 0, merkle.Digest{}, fmt.Errorf("client: sending upload chunk: %w", err)
		}
	}
	resp, err := stream.CloseAndRecv()
	if err != nil {
		return 0, merkle.Digest{}, fmt.Errorf("client: finishing upload: %w", err)
	}
	d, ok := merkle.DigestFromBytes(resp.Root)
	if !ok {
		return 0, merkle.Digest{}, fmt.Errorf("client: server returned a malformed root (%d bytes)", len(resp.Root))
	}
	return resp.Index, d, nil
}

// Download fetches the file at index and verifies it against the
// inclusion proof the server sends at the start of the same stream. It
// returns the file's original filename alongside its bytes.
func (c *Client) Download(ctx context.Context, index uint64) (filename string, data []byte, err error) {
	stream, err := c.api.Download(ctx, &rpcapi.FileIndex{Index: index})
	if err != nil {
		return "", nil, fmt.Errorf("client: opening download stream: %w", err)
	}

	first, err := stream.Recv()
	if err != nil {
		return "", nil, fmt.Errorf("client: receiving download entry: %w", err)
	}
	if first.Entry == nil {
		return "", nil, fmt.Errorf("client: download stream did not start with an entry message")
	}
	proof, err := merkle.DecodeProof(first.Entry.Proof)
	if err != nil {
		return "", nil, fmt.Errorf("client: decoding download proof: %w", err)
	}
	filename = first.Entry.Metadata.Filename

	var buf bytes.Buffer
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("client: receiving download chunk: %w", err)
		}
		buf.Write(resp.Chunk)
	}

	digest := merkle.Sum(buf.Bytes())
	if !proof.Verify(digest) {
		return "", nil, fmt.Errorf("client: downloaded file at index %d failed inclusion verification", index)
	}
	return filename, buf.Bytes(), nil
}
