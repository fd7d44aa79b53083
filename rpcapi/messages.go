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

// Package rpcapi defines the FileApi wire messages and the hand-written
// grpc.ServiceDesc that exposes them, in place of protoc-generated stubs.
package rpcapi

// Empty carries no data; used for the Count and Root unary calls.
type Empty struct{}

// CountResponse answers Count.
type CountResponse struct {
	Count uint64 `json:"count"`
}

// RootResponse answers Root. Root never returns a zero-value response: an
// empty archive fails the call with a NotFound status instead.
type RootResponse struct {
	Root []byte `json:"root"`
}

// FileIndex names the leaf a Download or Proof call targets.
type FileIndex struct {
	Index uint64 `json:"index"`
}

// UploadRequest is one message of a client-streaming Upload call: a tagged
// union over Metadata, Sha256 and Chunk. A well formed stream sends exactly
// one message with Metadata set, then exactly one with Sha256 set, then zero
// or more messages with Chunk set, in that order. A message with none of
// the three set is empty and rejected.
type UploadRequest struct {
	Metadata *UploadMetadata `json:"metadata,omitempty"`
	Sha256   []byte          `json:"sha256,omitempty"`
	Chunk    []byte          `json:"chunk,omitempty"`
}

// UploadMetadata is the first message of an Upload stream.
type UploadMetadata struct {
	Filename string `json:"filename"`
}

// UploadResponse answers a completed Upload call.
type UploadResponse struct {
	Index uint64 `json:"index"`
	Root  []byte `json:"root"`
}

// DownloadResponse is one message of a server-streaming Download call: a
// tagged union over Entry and Chunk. The first message a Download call
// sends always carries Entry; every message after that carries Chunk.
type DownloadResponse struct {
	Entry *DownloadEntry `json:"entry,omitempty"`
	Chunk []byte         `json:"chunk,omitempty"`
}

// DownloadEntry carries the metadata and inclusion proof for the file a
// Download call is about to stream, sent once, before any Chunk message.
type DownloadEntry struct {
	Metadata *UploadMetadata `json:"metadata"`
	// Proof is the binary encoding produced by merkle.Proof.EncodeBin.
	Proof []byte `json:"merkle_proof"`
}

// ProofResponse answers Proof.
type ProofResponse struct {
	// Proof is the binary encoding produced by merkle.Proof.EncodeBin.
	Proof []byte `json:"proof"`
}
