package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/gi8lino/jiraview/internal/app"
)

var (
	Version string = "dev"
	Commit  string = "none"
)

//go:embed web
var webFS embed.FS

func main() {
	ctx := context.Background()

	if err := app.Run(ctx, webFS, Version, Commit, os.Args[1:], os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
