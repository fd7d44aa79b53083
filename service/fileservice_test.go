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
	"context"
	"io"
	"testing"

	"github.com/mrklar-dev/mrklar/config/configtest"
	"github.com/mrklar-dev/mrklar/merkle"
	"github.com/mrklar-dev/mrklar/node"
	"github.com/mrklar-dev/mrklar/rpcapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// fakeServerStream is a minimal grpc.ServerStream good enough to drive
// FileService's handlers directly, bypassing the network transport.
type fakeServerStream struct {
	ctx  context.Context
	in   []any
	out  []any
	recv int
}

func (f *fakeServerStream) SetHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)       {}
func (f *fakeServerStream) Context() context.Context     { return f.ctx }
func (f *fakeServerStream) SendMsg(m any) error {
	f.out = append(f.out, m)
	return nil
}
func (f *fakeServerStream) RecvMsg(m any) error {
	if f.recv >= len(f.in) {
		return io.EOF
	}
	src := f.in[f.recv]
	f.recv++
	switch dst := m.(type) {
	case *rpcapi.UploadRequest:
		*dst = *(src.(*rpcapi.UploadRequest))
	case *rpcapi.FileIndex:
		*dst = *(src.(*rpcapi.FileIndex))
	}
	return nil
}

func newTestService(t *testing.T) *FileService {
	t.Helper()
	cfg := configtest.Default(t)
	n, err := node.Open(cfg)
	if err != nil {
		t.Fatalf("node.Open: %v", err)
	}
	return &FileService{Node: n}
}

func uploadReq(t *testing.T, svc *FileService, filename string, chunks ...[]byte) *rpcapi.UploadResponse {
	t.Helper()
	var data []byte
	for _, c := range chunks {
		data = append(data, c...)
	}
	digest := merkle.Sum(data)

	var in []any
	in = append(in, &rpcapi.UploadRequest{Metadata: &rpcapi.UploadMetadata{Filename: filename}})
	in = append(in, &rpcapi.UploadRequest{Sha256: digest.Bytes()})
	for _, c := range chunks {
		in = append(in, &rpcapi.UploadRequest{Chunk: c})
	}
	stream := &fakeServerStream{ctx: context.Background(), in: in}
	if err := svc.Upload(&fileApiUploadServerAdapter{fakeServerStream: stream}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(stream.out) != 1 {
		t.Fatalf("Upload sent %d messages, want 1", len(stream.out))
	}
	return stream.out[0].(*rpcapi.UploadResponse)
}

// fileApiUploadServerAdapter satisfies rpcapi.FileApi_UploadServer over a
// fakeServerStream, since that interface adds SendAndClose/Recv on top of
// grpc.ServerStream.
type fileApiUploadServerAdapter struct {
	*fakeServerStream
}

func (a *fileApiUploadServerAdapter) SendAndClose(m *rpcapi.UploadResponse) error {
	return a.SendMsg(m)
}

func (a *fileApiUploadServerAdapter) Recv() (*rpcapi.UploadRequest, error) {
	m := new(rpcapi.UploadRequest)
	if err := a.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type fileApiDownloadServerAdapter struct {
	*fakeServerStream
}

func (a *fileApiDownloadServerAdapter) Send(m *rpcapi.DownloadResponse) error {
	return a.SendMsg(m)
}

type fileApiProofServerAdapter struct {
	*fakeServerStream
}

func (a *fileApiProofServerAdapter) Send(m *rpcapi.ProofResponse) error {
	return a.SendMsg(m)
}

func TestCountRootProof(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	count, err := svc.Count(ctx, &rpcapi.Empty{})
	if err != nil || count.Count != 0 {
		t.Fatalf("Count on empty archive = %+v, %v", count, err)
	}
	if _, err := svc.Root(ctx, &rpcapi.Empty{}); status.Code(err) != codes.NotFound {
		t.Fatalf("Root on empty archive err = %v, want NotFound", err)
	}

	resp := uploadReq(t, svc, "hello.txt", []byte("hello "), []byte("world"))
	if resp.Index != 0 {
		t.Fatalf("Index = %d, want 0", resp.Index)
	}

	count, err = svc.Count(ctx, &rpcapi.Empty{})
	if err != nil || count.Count != 1 {
		t.Fatalf("Count after upload = %+v, %v", count, err)
	}
	root, err := svc.Root(ctx, &rpcapi.Empty{})
	if err != nil || len(root.Root) == 0 {
		t.Fatalf("Root after upload = %+v, %v", root, err)
	}

	proofStream := &fakeServerStream{ctx: ctx, in: []any{&rpcapi.FileIndex{Index: 0}}}
	if err := svc.Proof(&rpcapi.FileIndex{Index: 0}, &fileApiProofServerAdapter{fakeServerStream: proofStream}); err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if len(proofStream.out) != 1 {
		t.Fatalf("Proof sent %d messages, want 1", len(proofStream.out))
	}
	if len(proofStream.out[0].(*rpcapi.ProofResponse).Proof) == 0 {
		t.Fatal("Proof returned an empty encoding")
	}

	failStream := &fakeServerStream{ctx: ctx}
	if err := svc.Proof(&rpcapi.FileIndex{Index: 99}, &fileApiProofServerAdapter{fakeServerStream: failStream}); err == nil {
		t.Fatal("Proof(99) should fail on a single-entry archive")
	}
}

func TestUploadThenDownloadRoundTrips(t *testing.T) {
	svc := newTestService(t)
	want := []byte("the quick brown fox jumps over the lazy dog")
	uploadReq(t, svc, "fox.txt", want)

	inStream := &fakeServerStream{ctx: context.Background(), in: []any{&rpcapi.FileIndex{Index: 0}}}
	dl := &fileApiDownloadServerAdapter{fakeServerStream: inStream}
	if err := svc.Download(&rpcapi.FileIndex{Index: 0}, dl); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(inStream.out) == 0 {
		t.Fatal("Download sent no messages")
	}
	first := inStream.out[0].(*rpcapi.DownloadResponse)
	if first.Entry == nil {
		t.Fatalf("first Download message = %+v, want an Entry", first)
	}
	if first.Entry.Metadata.Filename != "fox.txt" {
		t.Fatalf("Entry.Metadata.Filename = %q, want %q", first.Entry.Metadata.Filename, "fox.txt")
	}
	if _, err := merkle.DecodeProof(first.Entry.Proof); err != nil {
		t.Fatalf("DecodeProof(Entry.Proof): %v", err)
	}

	var got []byte
	for _, m := range inStream.out[1:] {
		got = append(got, m.(*rpcapi.DownloadResponse).Chunk...)
	}
	if string(got) != string(want) {
		t.Fatalf("downloaded bytes = %q, want %q", got, want)
	}
}

func TestUploadRejectsEmptyFilename(t *testing.T) {
	svc := newTestService(t)
	in := []any{
		&rpcapi.UploadRequest{Metadata: &rpcapi.UploadMetadata{Filename: ""}},
	}
	stream := &fakeServerStream{ctx: context.Background(), in: in}
	err := svc.Upload(&fileApiUploadServerAdapter{fakeServerStream: stream})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("Upload with empty filename err = %v, want InvalidArgument", err)
	}
}

func TestUploadRejectsDigestMismatch(t *testing.T) {
	svc := newTestService(t)
	wrong := merkle.Sum([]byte("not the payload"))
	in := []any{
		&rpcapi.UploadRequest{Metadata: &rpcapi.UploadMetadata{Filename: "mismatch.txt"}},
		&rpcapi.UploadRequest{Sha256: wrong.Bytes()},
		&rpcapi.UploadRequest{Chunk: []byte("the actual payload")},
	}
	stream := &fakeServerStream{ctx: context.Background(), in: in}
	err := svc.Upload(&fileApiUploadServerAdapter{fakeServerStream: stream})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("Upload with mismatched digest err = %v, want InvalidArgument", err)
	}

	count, countErr := svc.Count(context.Background(), &rpcapi.Empty{})
	if countErr != nil || count.Count != 0 {
		t.Fatalf("archive committed a file despite the digest mismatch: %+v, %v", count, countErr)
	}
}

var (
	_ rpcapi.FileApi_UploadServer   = (*fileApiUploadServerAdapter)(nil)
	_ rpcapi.FileApi_DownloadServer = (*fileApiDownloadServerAdapter)(nil)
	_ rpcapi.FileApi_ProofServer    = (*fileApiProofServerAdapter)(nil)
	_ grpc.ServerStream             = (*fakeServerStream)(nil)
)
