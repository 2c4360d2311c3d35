package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/todoterm/internal/actions"
	"github.com/idilsaglam/todoterm/internal/api"
	"github.com/idilsaglam/todoterm/internal/auth"
	"github.com/idilsaglam/todoterm/internal/cache"
	"github.com/idilsaglam/todoterm/internal/model"
	"github.com/idilsaglam/todoterm/internal/store"
	"github.com/idilsaglam/todoterm/internal/tui"
	"github.com/idilsaglam/todoterm/internal/ui"
)

// Options tune behavior from root flags (already merged with config/env by
// main).
type Options struct {
	APIURL    string
	CachePath string
	Group     bool // list grouped by pending/done
	Offline   bool // read the cache instead of the network
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "ui":
		return doUI(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: todo rm <id>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(opt, id)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: todo auth <login|logout|status>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAuthLogin()
		case "logout":
			return doAuthLogout()
		case "status":
			return doAuthStatus()
		default:
			ui.Fail("usage: todo auth <login|logout|status>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todo - a terminal client for todod

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ls                 Print the item list (use -offline for the cached copy)
  ui                 Interactive list (live-updates when the server changes)
  add <title...>     Create an item on the server
  rm <id>            Delete the item with the given server ID
  auth <login|logout|status>   Token authentication

Examples:
  todo add "Buy milk"
  todo ls
  todo rm 3
  todo -api http://todo.local:8080 ui
`)
}

// newClient builds the API client with whatever token is around. A missing
// token is fine; the local todod does not require one.
func newClient(opt Options) *api.Client {
	token := ""
	if ti, _ := auth.GetToken(); ti != nil {
		token = ti.Token
	}
	return api.New(opt.APIURL, token)
}

// loadItems runs the fetch action against a fresh store and returns its
// projection, mirroring what the TUI does on startup. Offline mode reads the
// cache instead.
func loadItems(opt Options) ([]model.Item, error) {
	if opt.Offline {
		return cache.Load(opt.CachePath)
	}

	s := store.New()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := actions.FetchList(ctx, newClient(opt), s); err != nil {
		return nil, err
	}
	items := s.State()
	if opt.CachePath != "" {
		_ = cache.Save(opt.CachePath, items)
	}
	return items, nil
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	items, err := loadItems(opt)
	if err != nil {
		ui.Fail("fetch: " + err.Error())
		ui.Hint("Hint: is todod running? Try `todo ls -offline` for the cached copy")
		return 1
	}

	// Header + progress
	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, "✔"), d,
		ui.C(ui.Current().Pending, "•"), p,
		ui.C(ui.Current().Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: `todo ui` for the interactive list"))
	ui.Panel(lines)
	return 0
}

func doUI(opt Options) int {
	if err := tui.Run(store.New(), newClient(opt), opt.CachePath); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func doAdd(opt Options, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	created, err := newClient(opt).Create(ctx, model.Item{Title: title})
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("added #%d", created.ID))
	return 0
}

func doRemove(opt Options, id int64) int {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := newClient(opt).Delete(ctx, id); err != nil {
		ui.Fail("rm: " + err.Error())
		ui.Hint("Hint: run `todo ls` to see valid ids")
		return 1
	}
	ui.OK("removed")
	return 0
}

// -------------- auth subcommands ----------------

func doAuthLogin() int {
	fmt.Print("Paste your token: ")
	var token string
	if _, err := fmt.Scanln(&token); err != nil {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if err := auth.SetToken(token, nil); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func doAuthLogout() int {
	ti, _ := auth.GetToken()
	if ti != nil && ti.Source == "env" {
		ui.OK("token is provided by " + auth.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := auth.DeleteToken(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doAuthStatus() int {
	ti, _ := auth.GetToken()
	if ti == nil {
		fmt.Println(ui.C(ui.Current().Muted, "not logged in"))
		fmt.Println("Run: todo auth login")
		return 0
	}
	fmt.Printf("source: %s\n", ti.Source)
	if ti.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("expires: (unknown)")
	}
	fmt.Println("env override: " + auth.EnvToken)
	return 0
}

// -------------- rendering helpers --------------

func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		id := fmt.Sprintf("%3d.", it.ID)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if it.Done {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		title := it.Title
		if len(title) > 80 {
			title = title[:77] + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C("\033[2m", id), ui.C(color, box), title))
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
