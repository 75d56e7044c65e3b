package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/host"
	"github.com/steelcutops/steelfm/steelfm/navigator"
)

const (
	defaultWidth = 80
	dirIcon      = "[dir]"
	parentIcon   = "[ ^ ]"
)

var (
	errQuit      = errors.New("quit")
	errUsage     = errors.New("usage")
	errNoSuchArg = errors.New("No such file or folder")
)

type command struct {
	name  string
	usage string
	help  string
	// args is the exact argument count; -1 joins all words into one name.
	args int
	run  func(s *shell, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"ls", "ls", "List the current directory", 0, (*shell).cmdList},
		{"refresh", "refresh", "Reload the current directory", 0, (*shell).cmdList},
		{"cd", "cd NAME", "Enter a directory (.. for the parent)", -1, (*shell).cmdCd},
		{"up", "up", "Go to the parent directory", 0, (*shell).cmdUp},
		{"back", "back", "Go to the parent directory, or exit at the root", 0, (*shell).cmdBack},
		{"pwd", "pwd", "Print the current directory", 0, (*shell).cmdPwd},
		{"open", "open NAME", "Open a file in the viewer, or enter a directory", -1, (*shell).cmdOpen},
		{"info", "info NAME", "Show details about a file or folder", -1, (*shell).cmdInfo},
		{"mkdir", "mkdir NAME", "Create a folder", -1, (*shell).cmdMkdir},
		{"touch", "touch NAME", "Create a file (.txt is added without an extension)", -1, (*shell).cmdTouch},
		{"rename", "rename NAME NEW", "Rename a file or folder", 2, (*shell).cmdRename},
		{"rm", "rm NAME", "Delete a file or folder", -1, (*shell).cmdDelete},
		{"copy", "copy NAME", "Copy a file or folder to the clipboard", -1, (*shell).cmdCopy},
		{"cut", "cut NAME", "Cut a file or folder to the clipboard", -1, (*shell).cmdCut},
		{"paste", "paste", "Paste the clipboard into the current directory", 0, (*shell).cmdPaste},
		{"clip", "clip [clear]", "Show or clear the clipboard", -1, (*shell).cmdClip},
		{"help", "help", "Show this help", 0, (*shell).cmdHelp},
		{"quit", "quit", "Exit", 0, (*shell).cmdQuit},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	switch name {
	case "exit", "q":
		return lookupCommand("quit")
	case "dir":
		return lookupCommand("ls")
	}
	return command{}, false
}

type styles struct {
	header  lipgloss.Style
	dir     lipgloss.Style
	file    lipgloss.Style
	details lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		header:  r.NewStyle().Bold(true).Underline(true),
		dir:     r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		file:    r.NewStyle(),
		details: r.NewStyle().Foreground(lipgloss.Color("245")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// shell is the terminal front end: it renders listings, reads commands and
// turns every failure into a one-line notice.
type shell struct {
	host   *host.Host
	nav    *navigator.Navigator
	in     *bufio.Scanner
	out    io.Writer
	styles styles
	logger logger.Logger

	assumeYes   bool
	interactive bool
	width       int
}

func newShell(h *host.Host, in io.Reader, out io.Writer) *shell {
	return &shell{
		host:   h,
		nav:    h.Navigator,
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newStyles(out),
		logger: h.Logger,
		width:  defaultWidth,
	}
}

func (s *shell) run(ctx context.Context) error {
	s.printListing()
	for {
		fmt.Fprint(s.out, s.prompt())
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if err := s.execute(ctx, line); errors.Is(err, errQuit) {
			return nil
		}
	}
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) prompt() string {
	return "steelfm:" + s.displayPath(s.nav.Current()) + "> "
}

// displayPath shows path relative to the storage root.
func (s *shell) displayPath(path string) string {
	rel, err := filepath.Rel(s.nav.Root(), path)
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// execute runs one command line. The returned error has already been shown;
// only errQuit matters to the caller.
func (s *shell) execute(ctx context.Context, line string) error {
	words, err := splitArgs(line)
	if err != nil {
		s.notice(err.Error())
		return err
	}
	if len(words) == 0 {
		return nil
	}

	c, ok := lookupCommand(words[0])
	if !ok {
		s.notice(fmt.Sprintf("Unknown command %q, type help", words[0]))
		return errUsage
	}

	args := words[1:]
	if c.args == -1 {
		if len(args) > 0 {
			args = []string{strings.Join(args, " ")}
		} else if strings.Contains(c.usage, "NAME") {
			s.notice("Usage: " + c.usage)
			return errUsage
		}
	} else if len(args) != c.args {
		s.notice("Usage: " + c.usage)
		return errUsage
	}

	s.logger.Debug("Shell command", "command", c.name, "args", args)
	err = c.run(s, ctx, args)
	if err != nil && !errors.Is(err, errQuit) {
		s.logger.Debug("Shell command failed", "command", c.name, "error", err)
		s.notice(filemanager.Notice(err))
	}
	return err
}

func (s *shell) notice(msg string) {
	fmt.Fprintln(s.out, s.styles.notice.Render(msg))
}

func (s *shell) say(msg string) {
	fmt.Fprintln(s.out, msg)
}

// confirm asks a yes/no question. Without a terminal and without -yes the
// answer is no.
func (s *shell) confirm(question string) bool {
	if s.assumeYes {
		s.say(question + " [y/N] y")
		return true
	}
	if !s.interactive {
		s.say(question + " [y/N] n (no terminal, use -yes)")
		return false
	}
	fmt.Fprint(s.out, question+" [y/N] ")
	answer, ok := s.readLine()
	if !ok {
		fmt.Fprintln(s.out)
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// entry resolves a name of the current listing.
func (s *shell) entry(name string) (filemanager.Entry, error) {
	if e, ok := s.nav.Lookup(name); ok {
		return e, nil
	}
	return filemanager.Entry{}, fmt.Errorf("%w: %s", errNoSuchArg, name)
}

func (s *shell) printListing() {
	s.say(s.styles.header.Render(s.displayPath(s.nav.Current())))
	entries := s.nav.Entries()
	if len(entries) == 0 {
		s.say(s.styles.details.Render("  (empty)"))
		return
	}
	for _, e := range entries {
		s.say(s.renderEntry(e))
	}
}

func (s *shell) renderEntry(e filemanager.Entry) string {
	icon, style := e.Category().Icon(), s.styles.file
	switch {
	case e.IsParent:
		icon, style = parentIcon, s.styles.dir
	case e.IsDir:
		icon, style = dirIcon, s.styles.dir
	}
	width := s.width - len(icon) - 1
	if width < 1 {
		width = 1
	}
	label := style.MaxWidth(width).Render(e.Label())
	indent := strings.Repeat(" ", len(icon)+1)
	return icon + " " + label + "\n" + indent + s.styles.details.MaxWidth(width).Render(e.Details())
}

func (s *shell) cmdList(_ context.Context, _ []string) error {
	if _, err := s.nav.Reload(); err != nil {
		return err
	}
	s.printListing()
	return nil
}

func (s *shell) cmdCd(ctx context.Context, args []string) error {
	if args[0] == filemanager.ParentLabel {
		return s.cmdUp(ctx, nil)
	}
	e, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if _, err := s.nav.Enter(e.Path); err != nil {
		return err
	}
	s.printListing()
	return nil
}

func (s *shell) cmdUp(_ context.Context, _ []string) error {
	if _, err := s.nav.GoToParent(); err != nil {
		return err
	}
	s.printListing()
	return nil
}

func (s *shell) cmdBack(_ context.Context, _ []string) error {
	handled, err := s.nav.GoBack()
	if err != nil {
		return err
	}
	if !handled {
		return errQuit
	}
	s.printListing()
	return nil
}

func (s *shell) cmdPwd(_ context.Context, _ []string) error {
	s.say(s.nav.Current())
	return nil
}

func (s *shell) cmdOpen(ctx context.Context, args []string) error {
	e, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if e.IsParent {
		return s.cmdUp(ctx, nil)
	}
	if e.IsDir {
		if _, err := s.nav.Enter(e.Path); err != nil {
			return err
		}
		s.printListing()
		return nil
	}
	return s.host.Opener.Open(ctx, e.Path)
}

func (s *shell) cmdInfo(_ context.Context, args []string) error {
	e, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if e.IsParent {
		return fmt.Errorf("%w: %s", errNoSuchArg, args[0])
	}
	st, err := s.host.FileManager.Stat(e.Path)
	if err != nil {
		return err
	}

	s.say("Name:     " + st.Name)
	s.say("Path:     " + st.Path)
	if st.IsDir {
		s.say("Type:     folder")
		s.say(fmt.Sprintf("Items:    %d", st.ChildCount))
	} else {
		s.say("Type:     " + st.Category().String())
		s.say("Mime:     " + s.host.Opener.MimeType(st.Path))
		s.say(fmt.Sprintf("Size:     %s (%d bytes)", filemanager.FormatSize(st.Size), st.Size))
	}
	s.say("Modified: " + filemanager.FormatDate(st.Modified))
	return nil
}

func (s *shell) cmdMkdir(_ context.Context, args []string) error {
	if _, err := s.nav.CreateFolder(args[0]); err != nil {
		return err
	}
	s.say("Folder created")
	s.printListing()
	return nil
}

func (s *shell) cmdTouch(_ context.Context, args []string) error {
	if _, err := s.nav.CreateFile(args[0]); err != nil {
		return err
	}
	s.say("File created")
	s.printListing()
	return nil
}

func (s *shell) cmdRename(_ context.Context, args []string) error {
	e, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if _, err := s.nav.Rename(e.Path, args[1]); err != nil {
		return err
	}
	s.say("Renamed successfully")
	s.printListing()
	return nil
}

func (s *shell) cmdDelete(_ context.Context, args []string) error {
	e, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if !s.confirm(fmt.Sprintf("Are you sure you want to delete %s?", e.Label())) {
		return nil
	}
	err = s.nav.Delete(e.Path)
	if err != nil {
		s.printListing()
		return err
	}
	s.say("Deleted successfully")
	s.printListing()
	return nil
}

func (s *shell) cmdCopy(_ context.Context, args []string) error {
	return s.mark(args[0], s.nav.MarkCopy)
}

func (s *shell) cmdCut(_ context.Context, args []string) error {
	return s.mark(args[0], s.nav.MarkMove)
}

func (s *shell) mark(name string, mark func(string) error) error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	if e.IsParent {
		return fmt.Errorf("%w: %s", errNoSuchArg, name)
	}
	if err := mark(e.Path); err != nil {
		return err
	}
	s.say("Navigate to destination and select Paste")
	return nil
}

func (s *shell) cmdPaste(_ context.Context, _ []string) error {
	item, _ := s.nav.Clipboard()

	_, err := s.nav.Paste()
	if errors.Is(err, navigator.ErrConfirmationRequired) {
		proceed := s.confirm(navigator.ErrConfirmationRequired.Error())
		_, err = s.nav.Resolve(proceed)
		if err == nil && !proceed {
			return nil
		}
	}
	if err != nil {
		s.printListing()
		return err
	}

	if item.Op == navigator.OpMove {
		s.say("Moved successfully")
	} else {
		s.say("Copied successfully")
	}
	s.printListing()
	return nil
}

func (s *shell) cmdClip(_ context.Context, args []string) error {
	if len(args) == 1 {
		if args[0] != "clear" {
			s.notice("Usage: clip [clear]")
			return errUsage
		}
		s.nav.ClearClipboard()
		s.say("Clipboard cleared")
		return nil
	}
	item, ok := s.nav.Clipboard()
	if !ok {
		s.say("Clipboard is empty")
		return nil
	}
	s.say(fmt.Sprintf("%s %s", item.Op, s.displayPath(item.Source)))
	return nil
}

func (s *shell) cmdHelp(_ context.Context, _ []string) error {
	width := 0
	for _, c := range commands {
		if len(c.usage) > width {
			width = len(c.usage)
		}
	}
	s.say("Commands:")
	for _, c := range commands {
		s.say(fmt.Sprintf("  %-*s  %s", width, c.usage, c.help))
	}
	return nil
}

func (s *shell) cmdQuit(_ context.Context, _ []string) error {
	return errQuit
}

// splitArgs splits a command line on spaces, keeping double or single quoted
// runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)
	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errors.New("Unterminated quote")
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
