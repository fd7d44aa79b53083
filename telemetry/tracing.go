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

// Package telemetry instruments the RPC surface: manually-created trace
// spans around each call, a rolling throughput estimate, and batched
// commit-event logging.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// tracerName identifies this package's spans in whatever exporter the
// process wires up.
const tracerName = "github.com/mrklar-dev/mrklar/telemetry"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// UnaryServerInterceptor opens one span per unary RPC, recording the
// handler's error (if any) on it. This is a hand-rolled replacement for
// otelgrpc's interceptor: that package instruments the exact
// protobuf-codegen call shape this module's hand-written ServiceDesc
// doesn't use, so the span is created directly here instead.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, span := tracer().Start(ctx, info.FullMethod)
		defer span.End()
		resp, err := handler(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return resp, err
	}
}

// StreamServerInterceptor opens one span per streaming RPC, spanning the
// handler's whole lifetime.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, span := tracer().Start(ss.Context(), info.FullMethod)
		defer span.End()
		err := handler(srv, &tracedServerStream{ServerStream: ss, ctx: ctx})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// tracedServerStream overrides Context so handlers observe the span's
// context rather than the stream's original one.
type tracedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *tracedServerStream) Context() context.Context {
	return s.ctx
}
