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

// Command mrklar-server runs the archive's gRPC-based RPC service.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrklar-dev/mrklar/config"
	"github.com/mrklar-dev/mrklar/node"
	"github.com/mrklar-dev/mrklar/server"
	"k8s.io/klog/v2"
)

func main() {
	var (
		addr       = flag.String("addr", envOr("MRKLAR_ADDR", "127.0.0.1:50051"), "gRPC listen address")
		dbDir      = flag.String("db-dir", envOr("MRKLAR_DB_DIR", "./mrklar-data/db"), "directory holding db.bin")
		filesDir   = flag.String("files-dir", envOr("MRKLAR_FILES_DIR", "./mrklar-data/files"), "directory holding committed file bodies")
		channelCap = flag.Int("channel-capacity", 0, "download backpressure channel capacity (0 = default)")
		tracing    = flag.Bool("tracing", os.Getenv("MRKLAR_TRACING") == "1", "emit RPC trace spans")
		s3Bucket   = flag.String("s3-bucket", os.Getenv("MRKLAR_S3_BUCKET"), "S3 bucket name stored in the config (no mirror is built from it)")
		gcsBucket  = flag.String("gcs-bucket", os.Getenv("MRKLAR_GCS_BUCKET"), "GCS bucket name stored in the config (no mirror is built from it)")
		mysqlDSN   = flag.String("mysql-dsn", os.Getenv("MRKLAR_MYSQL_DSN"), "optional MySQL DSN for an auxiliary entry index")
	)
	klog.InitFlags(nil)
	flag.Parse()

	cfg := config.Default(*dbDir, *filesDir).WithAddr(*addr).WithTracing(*tracing)
	if *channelCap > 0 {
		cfg.WithChannelCapacity(*channelCap)
	}
	cfg.S3Bucket = *s3Bucket
	cfg.GCSBucket = *gcsBucket
	cfg.MySQLDSN = *mysqlDSN

	n, err := node.Open(cfg)
	if err != nil {
		klog.Fatalf("mrklar-server: opening node: %v", err)
	}
	defer n.Close()

	srv, err := server.New(n)
	if err != nil {
		klog.Fatalf("mrklar-server: starting server: %v", err)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			klog.Errorf("mrklar-server: serve: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	srv.GracefulStop()
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
