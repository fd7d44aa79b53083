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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mrklar-dev/mrklar/rpcapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// chunkOrErr carries one read from the committed file, or the error that
// ended the read loop.
type chunkOrErr struct {
	data []byte
	err  error
}

// Download implements rpcapi.FileApiServer. A producer goroutine reads
// the committed file off disk into a bounded channel; the RPC stream
// drains it. The channel's capacity (config.Config.ChannelCapacity) is
// the only coupling between how fast the disk can be read and how fast
// the transport can write, so a slow client naturally throttles the
// reader instead of the whole file being buffered in memory up front.
func (s *FileService) Download(in *rpcapi.FileIndex, stream rpcapi.FileApi_DownloadServer) error {
	a := s.Node.Archive
	entry, err := a.EntryAt(int(in.Index))
	if err != nil {
		return toStatus(err)
	}
	proof, err := a.ProofAt(int(in.Index))
	if err != nil {
		return toStatus(err)
	}
	if err := stream.Send(&rpcapi.DownloadResponse{Entry: &rpcapi.DownloadEntry{
		Metadata: &rpcapi.UploadMetadata{Filename: entry.Filename},
		Proof:    proof.EncodeBin(),
	}}); err != nil {
		return fmt.Errorf("sending download entry: %w", err)
	}

	path := a.FilePath(int(in.Index))
	f, err := os.Open(path)
	if err != nil {
		return status.Errorf(codes.Internal, "opening committed file: %v", err)
	}
	defer f.Close()

	capacity := s.Node.Config.ChannelCapacity
	if capacity <= 0 {
		capacity = 1
	}
	ch := make(chan chunkOrErr, capacity)
	done := make(chan struct{})
	go produceChunks(f, ch, done)
	defer close(done)

	for item := range ch {
		if item.err != nil {
			return status.Errorf(codes.Internal, "reading committed file: %v", item.err)
		}
		if len(item.data) == 0 {
			return nil
		}
		if err := stream.Send(&rpcapi.DownloadResponse{Chunk: item.data}); err != nil {
			return fmt.Errorf("sending download chunk: %w", err)
		}
	}
	return nil
}

func produceChunks(f *os.File, ch chan<- chunkOrErr, done <-chan struct{}) {
	defer close(ch)
	r := bufio.NewReaderSize(f, downloadChunkSize)
	for {
		buf := make([]byte, downloadChunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case ch <- chunkOrErr{data: buf[:n]}:
			case <-done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				select {
				case ch <- chunkOrErr{err: err}:
				case <-done:
				}
			}
			return
		}
	}
}
