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

// Command mrklar-monitor is a read-only terminal dashboard that polls a
// mrklar-server for its entry count and root.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mrklar-dev/mrklar/client"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	addr := flag.String("addr", envOr("MRKLAR_ADDR", "127.0.0.1:50051"), "server address")
	interval := flag.Duration("interval", time.Second, "poll interval")
	flag.Parse()

	c, err := client.Dial(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mrklar-monitor:", err)
		os.Exit(1)
	}
	defer c.Close()

	view := tview.NewTextView().
		SetDynamicColors(true).
		SetChangedFunc(func() {})
	view.SetBorder(true).SetTitle(fmt.Sprintf(" mrklar-monitor: %s ", *addr))

	app := tview.NewApplication().SetRoot(view, true)

	go poll(app, view, c, *interval)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEsc || ev.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return ev
	})

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "mrklar-monitor:", err)
		os.Exit(1)
	}
}

func poll(app *tview.Application, view *tview.TextView, c *client.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		render(app, view, c)
	}
}

func render(app *tview.Application, view *tview.TextView, c *client.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, countErr := c.Count(ctx)
	root, rootErr := c.Root(ctx)

	app.QueueUpdateDraw(func() {
		view.Clear()
		fmt.Fprintf(view, "[yellow]entries:[white] %d\n", count)
		switch {
		case status.Code(rootErr) == codes.NotFound:
			fmt.Fprintln(view, "[yellow]root:[white] (empty)")
		case rootErr != nil:
			fmt.Fprintf(view, "[yellow]root:[red] %v\n", rootErr)
		default:
			fmt.Fprintf(view, "[yellow]root:[white] %x\n", root.Bytes())
		}
		if countErr != nil {
			fmt.Fprintf(view, "[red]error:[white] %v\n", countErr)
		}
		fmt.Fprintf(view, "\n[gray]last polled %s, press q to quit[white]\n", time.Now().Format(time.TimeOnly))
	})
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
