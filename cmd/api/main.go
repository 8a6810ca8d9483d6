package main

import (
	"fmt"
	"os"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/cli"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseServeFlags()

	cfg := config.LoadOrEnvWithPath(flags.ConfigFile)

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
