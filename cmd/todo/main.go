package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todoterm/internal/cache"
	"github.com/idilsaglam/todoterm/internal/cli"
	"github.com/idilsaglam/todoterm/internal/config"
	"github.com/idilsaglam/todoterm/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", "", "todod base URL (overrides config and TODOTERM_API_URL)")
	theme := flag.String("theme", "", "output theme: classic, neon, mono")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	offline := flag.Bool("offline", false, "read the cached list instead of fetching")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if cfg.CachePath == "" {
		if p, err := cache.DefaultPath(); err == nil {
			cfg.CachePath = p
		}
	}
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		APIURL:    cfg.APIURL,
		CachePath: cfg.CachePath,
		Group:     *groupPending,
		Offline:   *offline,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
