// Package opener hands files to an external viewer application.
package opener

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/commandmanager"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/filetype"
)

// Launcher template placeholders.
const (
	PathPlaceholder = "{path}"
	MimePlaceholder = "{mime}"
)

var (
	errDirectory     = errors.New("directories are browsed, not opened")
	errEmptyTemplate = errors.New("no viewer command configured")
)

// DefaultTemplate returns the platform launcher.
func DefaultTemplate() string {
	if runtime.GOOS == "darwin" {
		return "open " + PathPlaceholder
	}
	return "xdg-open " + PathPlaceholder
}

type Option func(*Opener)

// WithTemplate sets the launcher command template. Every whitespace separated
// field becomes one argument after placeholder expansion.
func WithTemplate(template string) Option {
	return func(o *Opener) {
		o.template = template
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *Opener) {
		o.logger = l
	}
}

// WithSniffing enables content detection for files whose extension does not
// map to a viewer type.
func WithSniffing(enabled bool) Option {
	return func(o *Opener) {
		o.sniff = enabled
	}
}

type Opener struct {
	fs       afero.Fs
	commands commandmanager.CommandManager
	template string
	sniff    bool
	logger   logger.Logger
}

func New(fs afero.Fs, commands commandmanager.CommandManager, options ...Option) *Opener {
	o := &Opener{
		fs:       fs,
		commands: commands,
		template: DefaultTemplate(),
		sniff:    true,
		logger:   logger.Discard(),
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// MimeType resolves the type passed to the viewer. The extension table wins;
// content sniffing is only consulted when it yields the wildcard.
func (o *Opener) MimeType(path string) string {
	mime := filetype.MimeType(path)
	if mime != filetype.Wildcard || !o.sniff {
		return mime
	}

	f, err := o.fs.Open(path)
	if err != nil {
		return mime
	}
	defer f.Close()

	detected, err := filetype.Detect(f)
	if err != nil || detected == "" {
		return mime
	}
	return detected
}

// Command expands the launcher template for path.
func (o *Opener) Command(path string) (commandmanager.CommandConfig, error) {
	fields := strings.Fields(o.template)
	if len(fields) == 0 {
		return commandmanager.CommandConfig{}, errEmptyTemplate
	}

	mime := o.MimeType(path)
	hasPath := false
	args := make([]string, 0, len(fields))
	for _, f := range fields[1:] {
		if strings.Contains(f, PathPlaceholder) {
			hasPath = true
		}
		f = strings.ReplaceAll(f, PathPlaceholder, path)
		f = strings.ReplaceAll(f, MimePlaceholder, mime)
		args = append(args, f)
	}
	if !hasPath {
		args = append(args, path)
	}
	return commandmanager.CommandConfig{Command: fields[0], Args: args}, nil
}

// Open launches the viewer for path. Any failure to find or run a viewer is
// reported as filemanager.NoHandlerAvailable.
func (o *Opener) Open(ctx context.Context, path string) error {
	info, err := o.fs.Stat(path)
	if err != nil {
		return &filemanager.Error{Kind: filemanager.NotReadable, Op: filemanager.OpOpen, Path: path, Err: err}
	}
	if info.IsDir() {
		return &filemanager.Error{Kind: filemanager.NoHandlerAvailable, Op: filemanager.OpOpen, Path: path, Err: errDirectory}
	}

	config, err := o.Command(path)
	if err != nil {
		return &filemanager.Error{Kind: filemanager.NoHandlerAvailable, Op: filemanager.OpOpen, Path: path, Err: err}
	}

	o.logger.Debug("Opening file", "path", path, "command", config.Command, "args", config.Args)
	result, err := o.commands.Run(ctx, config)
	if err != nil {
		if commandmanager.IsNotFound(err) {
			o.logger.Warn("Viewer not installed", "command", config.Command)
		} else {
			o.logger.Warn("Viewer failed", "command", config.Command, "exit_code", result.ExitCode, "stderr", result.STDERR)
		}
		return &filemanager.Error{Kind: filemanager.NoHandlerAvailable, Op: filemanager.OpOpen, Path: path, Err: err}
	}
	return nil
}
