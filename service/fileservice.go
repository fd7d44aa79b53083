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

// Package service implements rpcapi.FileApiServer against a node.Node.
package service

import (
	"context"

	"github.com/mrklar-dev/mrklar/archive"
	"github.com/mrklar-dev/mrklar/node"
	"github.com/mrklar-dev/mrklar/rpcapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// downloadChunkSize is how much of a committed file Download sends per
// streamed message.
const downloadChunkSize = 64 * 1024

// FileService implements rpcapi.FileApiServer backed by a single node.
type FileService struct {
	Node *node.Node
}

var _ rpcapi.FileApiServer = (*FileService)(nil)

// Count implements rpcapi.FileApiServer.
func (s *FileService) Count(ctx context.Context, _ *rpcapi.Empty) (*rpcapi.CountResponse, error) {
	return &rpcapi.CountResponse{Count: uint64(s.Node.Archive.NumEntries())}, nil
}

// Root implements rpcapi.FileApiServer.
func (s *FileService) Root(ctx context.Context, _ *rpcapi.Empty) (*rpcapi.RootResponse, error) {
	root, err := s.Node.Archive.Root()
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpcapi.RootResponse{Root: root.Bytes()}, nil
}

// Proof implements rpcapi.FileApiServer. The proof is sent as a single
// stream message today; the stream carrier is kept for forward
// compatibility with proofs too large for one message.
func (s *FileService) Proof(in *rpcapi.FileIndex, stream rpcapi.FileApi_ProofServer) error {
	proof, err := s.Node.Archive.ProofAt(int(in.Index))
	if err != nil {
		return toStatus(err)
	}
	return stream.Send(&rpcapi.ProofResponse{Proof: proof.EncodeBin()})
}

func toStatus(err error) error {
	switch err {
	case archive.ErrEmpty, archive.ErrIndexOutOfRange:
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
