package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/auth"
	"github.com/CrestNiraj12/igreply/infra/backend"
	"github.com/CrestNiraj12/igreply/infra/config"
	"github.com/CrestNiraj12/igreply/infra/editor"
	"github.com/CrestNiraj12/igreply/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliCommand
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	}
	if _, ok := commands[args[0]]; ok {
		return cliCommand, args[0]
	}
	return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
}

func usage() string {
	var b strings.Builder
	b.WriteString("Usage: igreply [--version|-v] [--help|-h]\n")
	b.WriteString("       igreply <command> [flags]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(&b, "  %-16s %s\n", name, commands[name].summary)
	}
	b.WriteString("\nWithout a command the interactive dashboard starts.")
	return b.String()
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// setupLogging sends the standard logger to path. Bubble Tea owns the
// terminal, so without a path logs are dropped.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, domain.AppTitle)
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("igreply %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg.DebugLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// 2. Build services (concrete types satisfy app.* interfaces).
	client := backend.NewClient(cfg.APIURL)
	accountSvc := backend.NewAccountService(client)
	commentSvc := backend.NewCommentService(client)

	if mode == cliCommand {
		if err := runCommand(context.Background(), msg, os.Args[2:], accountSvc, commentSvc, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "igreply %s: %v\n", msg, err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Printf("ui state: %v", err)
	}

	handshake := func(ctx context.Context, authURL string) (auth.Outcome, error) {
		return auth.Run(ctx, authURL, auth.Options{
			Port: cfg.CallbackPort,
			Open: auth.BrowserOpener(cfg.Browser),
		})
	}

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Accounts:     accountSvc,
		Comments:     commentSvc,
		Handshake:    handshake,
		Editor:       editor.NewEnvEditor(),
		PollInterval: cfg.PollInterval,
		StatePath:    cfg.UIStatePath,
		State:        uiState,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "igreply: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
