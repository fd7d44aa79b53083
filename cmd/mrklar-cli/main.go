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

// Command mrklar-cli is a thin client for a running mrklar-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mrklar-dev/mrklar/client"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	addr := flag.String("addr", envOr("MRKLAR_ADDR", "127.0.0.1:50051"), "server address")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c, err := client.Dial(*addr)
	if err != nil {
		fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	switch cmd := args[0]; cmd {
	case "count":
		n, err := c.Count(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Println(n)

	case "root":
		root, err := c.Root(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				fmt.Println("(empty)")
				return
			}
			fatal(err)
		}
		fmt.Printf("%x\n", root.Bytes())

	case "upload":
		if len(args) != 2 {
			fatal(fmt.Errorf("usage: mrklar-cli upload <path>"))
		}
		f, err := os.Open(args[1])
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		index, root, err := c.Upload(ctx, args[1], f)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("index=%d root=%x\n", index, root.Bytes())

	case "download":
		if len(args) != 2 {
			fatal(fmt.Errorf("usage: mrklar-cli download <index>"))
		}
		index, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fatal(err)
		}
		_, data, err := c.Download(ctx, index)
		if err != nil {
			fatal(err)
		}
		os.Stdout.Write(data)

	case "proof":
		if len(args) != 2 {
			fatal(fmt.Errorf("usage: mrklar-cli proof <index>"))
		}
		index, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fatal(err)
		}
		proof, err := c.Proof(ctx, index)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%x\n", proof.EncodeBin())

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mrklar-cli [-addr host:port] count|root|upload <path>|download <index>|proof <index>")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "mrklar-cli:", err)
	os.Exit(1)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
