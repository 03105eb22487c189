package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/asu/internal/buffer"
	"github.com/xonecas/asu/internal/config"
	"github.com/xonecas/asu/internal/editor"
	"github.com/xonecas/asu/internal/highlight"
	"github.com/xonecas/asu/internal/logging"
	"github.com/xonecas/asu/internal/session"
	"github.com/xonecas/asu/internal/store"
	"github.com/xonecas/asu/internal/term"
)

const usage = "usage: asu [-config path] <file>"

var (
	errLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sourceStyle   = lipgloss.NewStyle().Faint(true)
	savedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("asu", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() { fmt.Fprintln(stdout, usage) }
	configPath := fs.String("config", "", "config file (default ~/.config/asu/config.toml)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stdout, usage)
		return 1
	}
	path := fs.Arg(0)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		printError(stdout, "invalid configuration", err)
		return 1
	}

	dataDir, dataDirErr := config.EnsureDataDir()
	if dataDirErr != nil {
		dataDir = ""
	}
	closer, err := logging.Setup(cfg.Log.FileOrDefault(dataDir), cfg.Log.LevelOrDefault())
	if err != nil {
		printError(stdout, "unable to open log file", err)
		return 1
	}
	defer closer.Close()
	if dataDirErr != nil {
		log.Warn().Err(dataDirErr).Msg("no data directory; default log file and cursor positions are off")
	}

	buf, err := buffer.Open(path)
	if err != nil {
		printError(stdout, "unable to open file: "+path, err)
		return 1
	}
	log.Info().Str("file", path).Int("size", buf.Size()).Msg("opened")

	var positions *store.Positions
	if dbPath := cfg.State.DBOrDefault(dataDir); dbPath != "" {
		ttl := time.Duration(cfg.State.TTLDaysOrDefault()) * 24 * time.Hour
		positions, err = store.Open(dbPath, ttl)
		if err != nil {
			log.Warn().Err(err).Str("db", dbPath).Msg("cursor positions will not be remembered")
			positions = nil
		}
	}
	defer positions.Close()

	palette := highlight.ThemePalette(cfg.UI.SyntaxThemeOrDefault())

	t, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		printError(stdout, "unable to use terminal", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := session.Run(ctx, session.Options{
		Terminal:  t,
		Buffer:    buf,
		Positions: positions,
		Editor: editor.Options{
			Margin:   cfg.UI.MarginOrDefault(),
			TabWidth: cfg.UI.TabWidthOrDefault(),
			Palette:  &palette,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("session failed")
		printError(stdout, err.Error(), nil)
		return 1
	}
	if res.Saved {
		fmt.Fprintln(stdout, savedLine(path, res.Summary))
	}
	return 0
}

// printError writes "error: <msg>" with the underlying cause dimmed after it.
func printError(w io.Writer, msg string, cause error) {
	line := errLabelStyle.Render("error:") + " " + msg
	if cause != nil {
		line += " " + sourceStyle.Render("("+rootCause(cause).Error()+")")
	}
	fmt.Fprintln(w, line)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func savedLine(path string, s buffer.Summary) string {
	return savedStyle.Render("saved") + fmt.Sprintf(" %s (+%d -%d lines)", path, s.Inserted, s.Deleted)
}
