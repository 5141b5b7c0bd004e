package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// ErrNoClipboard is returned when no clipboard tool is installed
var ErrNoClipboard = errors.New("no clipboard tool found")

// systemClipboard implements Clipboard using system commands
type systemClipboard struct{}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		return ErrNoClipboard
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Output Modes
// ============================================================================

// Mode represents where the rendered report goes
type Mode string

const (
	ModePrint Mode = "print"
	ModeFile  Mode = "file"
	ModeCopy  Mode = "copy"
)

// ParseMode validates an output mode name
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "", ModePrint:
		return ModePrint, nil
	case ModeFile, ModeCopy:
		return m, nil
	}
	return "", fmt.Errorf("unsupported output mode: %s (supported: print, file, copy)", name)
}

// ============================================================================
// Sink
// ============================================================================

// Sink delivers a rendered report
type Sink struct {
	mode      Mode
	path      string
	stdout    io.Writer
	clipboard Clipboard
}

// NewSink creates a sink for mode. path is only used by ModeFile.
func NewSink(mode Mode, path string) *Sink {
	return &Sink{
		mode:      mode,
		path:      path,
		stdout:    os.Stdout,
		clipboard: &systemClipboard{},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (s *Sink) WithClipboard(c Clipboard) *Sink {
	s.clipboard = c
	return s
}

// WithStdout sets the writer used by ModePrint
func (s *Sink) WithStdout(w io.Writer) *Sink {
	s.stdout = w
	return s
}

// Mode returns the sink's mode
func (s *Sink) Mode() Mode {
	return s.mode
}

// Deliver renders through render and sends the result to the sink.
// Copy mode falls back to printing when no clipboard tool exists.
func (s *Sink) Deliver(render func(w io.Writer) error) error {
	switch s.mode {
	case ModeFile:
		if s.path == "" {
			return errors.New("output mode file requires an output path")
		}
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		if err := render(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	case ModeCopy:
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return err
		}
		err := s.clipboard.Copy(buf.String())
		if errors.Is(err, ErrNoClipboard) {
			_, err = s.stdout.Write(buf.Bytes())
		}
		return err

	default: // print
		return render(s.stdout)
	}
}
