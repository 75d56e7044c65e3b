package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/config"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/host"
)

type flags struct {
	AssumeYes   bool
	ConfigPath  string
	Debug       bool
	LogFileName string
	Root        string
	Viewer      string

	set map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: map[string]bool{}}
	fs := flag.NewFlagSet("steelfm", flag.ContinueOnError)
	fs.BoolVar(&f.AssumeYes, "yes", false, "Answer yes to every confirmation")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	fs.StringVar(&f.ConfigPath, "config", "", "Path to INI configuration file")
	fs.StringVar(&f.LogFileName, "log", "", "Log file name")
	fs.StringVar(&f.Root, "root", "", "Storage root to browse")
	fs.StringVar(&f.Viewer, "viewer", "", "Viewer command template, e.g. 'xdg-open {path}'")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return f, nil
}

// apply overlays the flags given on the command line onto cfg.
func (f *flags) apply(cfg *config.Config) {
	if f.set["root"] {
		cfg.Root = f.Root
	}
	if f.set["viewer"] {
		cfg.Viewer = f.Viewer
	}
	if f.set["log"] {
		cfg.LogFile = f.LogFileName
	}
	if f.set["yes"] {
		cfg.AssumeYes = f.AssumeYes
	}
	if f.Debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
}

// configureLogger opens the log file so the terminal only shows the shell.
// The returned func closes it.
func configureLogger(cfg *config.Config) (logger.Logger, func()) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logger.NewWithOutput(io.Discard, level), func() {}
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l := logger.NewWithOutput(os.Stderr, level)
		l.Warn("Failed to open log file, logging to stderr", "file", cfg.LogFile, "error", err)
		return l, func() {}
	}
	l := logger.NewWithOutput(file, level)
	if level == logrus.DebugLevel {
		l.Debug("Debug mode enabled")
	}
	return l, func() { file.Close() }
}

func run(args []string) int {
	f, err := parseFlags(args)
	if err != nil {
		return 2
	}

	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	f.apply(cfg)

	log, closeLog := configureLogger(cfg)
	defer closeLog()

	h, err := host.NewHost(
		host.WithRoot(cfg.Root),
		host.WithViewer(cfg.Viewer),
		host.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to open storage root", "root", cfg.Root, "error", err)
		fmt.Fprintln(os.Stderr, filemanager.Notice(err))
		return 1
	}

	sh := newShell(h, os.Stdin, os.Stdout)
	sh.assumeYes = cfg.AssumeYes
	sh.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		sh.width = width
	}

	if err := sh.run(context.Background()); err != nil {
		log.Error("Shell stopped", "error", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
