// Command recordcheck reads survey record XML documents and reports the
// structure and values that could not be read.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"github.com/andaru/collectxml/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
