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

// Package server wires a node.Node to a listening grpc.Server.
package server

import (
	"fmt"
	"net"

	"github.com/mrklar-dev/mrklar/node"
	"github.com/mrklar-dev/mrklar/rpcapi"
	"github.com/mrklar-dev/mrklar/service"
	"github.com/mrklar-dev/mrklar/telemetry"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"k8s.io/klog/v2"
)

// maxConcurrentUploads bounds how many Upload calls may be staging a file
// at once, independent of how many connections grpc-go itself accepts.
const maxConcurrentUploads = 64

// Server owns a node and the grpc.Server exposing it.
type Server struct {
	Node *node.Node
	grpc *grpc.Server
	lis  net.Listener
}

// New builds a Server for n, listening on n.Config.Addr.
func New(n *node.Node) (*Server, error) {
	lis, err := net.Listen("tcp", n.Config.Addr)
	if err != nil {
		return nil, fmt.Errorf("server: listening on %s: %w", n.Config.Addr, err)
	}

	sem := semaphore.NewWeighted(maxConcurrentUploads)
	svc := &boundedFileService{
		FileService: &service.FileService{Node: n},
		sem:         sem,
	}

	var opts []grpc.ServerOption
	if n.Config.TracingEnabled {
		opts = append(opts, grpc.ChainUnaryInterceptor(telemetry.UnaryServerInterceptor()))
		opts = append(opts, grpc.ChainStreamInterceptor(telemetry.StreamServerInterceptor()))
	}
	g := grpc.NewServer(opts...)
	rpcapi.RegisterFileApiServer(g, svc)

	return &Server{Node: n, grpc: g, lis: lis}, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() string {
	return s.lis.Addr().String()
}

// Serve blocks, accepting connections until GracefulStop is called or a
// fatal accept error occurs.
func (s *Server) Serve() error {
	klog.Infof("server: listening on %s", s.Addr())
	return s.grpc.Serve(s.lis)
}

// GracefulStop stops accepting new RPCs and waits for in-flight ones to
// finish before returning.
func (s *Server) GracefulStop() {
	klog.Infof("server: shutting down")
	s.grpc.GracefulStop()
}

// boundedFileService wraps service.FileService, bounding concurrent
// Upload calls so a burst of staging requests can't exhaust file
// descriptors or disk buffers faster than commits can drain them.
type boundedFileService struct {
	*service.FileService
	sem *semaphore.Weighted
}

func (s *boundedFileService) Upload(stream rpcapi.FileApi_UploadServer) error {
	ctx := stream.Context()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("server: waiting for an upload slot: %w", err)
	}
	defer s.sem.Release(1)
	return s.FileService.Upload(stream)
}
