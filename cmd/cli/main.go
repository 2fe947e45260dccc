// Command cli is the interactive support-portal administration client.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/supportportal/internal/buildinfo"
	"github.com/dmitrijs2005/supportportal/internal/client/cli"
	"github.com/dmitrijs2005/supportportal/internal/client/config"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	buildinfo.PrintBuildData(stdout)

	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	app, err := cli.NewApp(ctx, cfg, stdin, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	app.Run(ctx)
	return 0
}
