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

package service

import (
	"errors"
	"io"

	"github.com/mrklar-dev/mrklar/archive"
	"github.com/mrklar-dev/mrklar/merkle"
	"github.com/mrklar-dev/mrklar/rpcapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"
)

// uploadState tracks where in the client-streaming protocol an Upload call
// currently is: a caller must send metadata, then its declared digest, then
// zero or more chunks, in that order, before closing the send side.
type uploadState int

const (
	awaitMetadata uploadState = iota
	awaitDigest
	readingChunks
)

var (
	// ErrEmptyMessage reports an Upload stream that closed before its
	// required Metadata or Sha256 message arrived.
	ErrEmptyMessage = errors.New("service: upload stream ended before a required message")

	// ErrUnexpectedMessageType reports an Upload message arriving out of
	// the Metadata -> Sha256 -> Chunk sequence, or one whose discriminant
	// doesn't match what the current state expects.
	ErrUnexpectedMessageType = errors.New("service: unexpected upload message type")

	// ErrUploadInvalidFilename reports Upload metadata carrying an empty
	// filename.
	ErrUploadInvalidFilename = errors.New("service: upload metadata filename must not be empty")

	// ErrUploadInvalidHash reports an Upload whose declared digest didn't
	// match the bytes actually streamed.
	ErrUploadInvalidHash = errors.New("service: upload declared digest does not match streamed bytes")
)

// Upload implements rpcapi.FileApiServer. It stages the incoming bytes to a
// temp file, verifies them against the client's declared digest, then
// commits them to the archive once the client closes the send side of the
// stream.
func (s *FileService) Upload(stream rpcapi.FileApi_UploadServer) error {
	staged, err := archive.Stage(s.Node.Config)
	if err != nil {
		return status.Errorf(codes.Internal, "staging upload: %v", err)
	}

	state := awaitMetadata
	var filename string
	var declared merkle.Digest

	for {
		req, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			staged.Abort()
			return status.Errorf(codes.Internal, "receiving upload: %v", err)
		}

		switch state {
		case awaitMetadata:
			if req.Metadata == nil {
				staged.Abort()
				return status.Error(codes.InvalidArgument, ErrUnexpectedMessageType.Error())
			}
			if req.Metadata.Filename == "" {
				staged.Abort()
				return status.Error(codes.InvalidArgument, ErrUploadInvalidFilename.Error())
			}
			filename = req.Metadata.Filename
			state = awaitDigest

		case awaitDigest:
			d, ok := merkle.DigestFromBytes(req.Sha256)
			if !ok {
				staged.Abort()
				return status.Error(codes.InvalidArgument, ErrUnexpectedMessageType.Error())
			}
			declared = d
			state = readingChunks

		case readingChunks:
			if req.Metadata != nil || req.Sha256 != nil || len(req.Chunk) == 0 {
				staged.Abort()
				return status.Error(codes.InvalidArgument, ErrUnexpectedMessageType.Error())
			}
			if len(req.Chunk) > 0 {
				if _, err := staged.Write(req.Chunk); err != nil {
					staged.Abort()
					return status.Errorf(codes.Internal, "writing staged chunk: %v", err)
				}
			}
		}
	}

	if state != readingChunks {
		staged.Abort()
		return status.Error(codes.InvalidArgument, ErrEmptyMessage.Error())
	}

	path, digest, err := staged.Finish()
	if err != nil {
		return status.Errorf(codes.Internal, "finishing staged upload: %v", err)
	}
	if digest != declared {
		staged.Abort()
		return status.Error(codes.InvalidArgument, ErrUploadInvalidHash.Error())
	}

	index, err := s.Node.Archive.Commit(filename, path, digest)
	if err != nil {
		return status.Errorf(codes.Internal, "committing upload: %v", err)
	}
	root, err := s.Node.Archive.Root()
	if err != nil {
		return status.Errorf(codes.Internal, "reading root after commit: %v", err)
	}
	klog.V(1).Infof("service: upload committed %q as entry %d", filename, index)
	return stream.SendAndClose(&rpcapi.UploadResponse{Index: uint64(index), Root: root.Bytes()})
}
