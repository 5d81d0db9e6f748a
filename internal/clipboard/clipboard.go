// Package clipboard provides clipboard access via platform shell commands.
// Records are imported from and exported to other applications through it.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command exists on
// this system.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// IsAvailable reports whether clipboard commands exist on this system.
func IsAvailable() bool {
	cmd, err := copyCommand()
	return err == nil && cmd != nil
}

// copyCommand returns the command that reads stdin into the clipboard.
func copyCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy"), nil
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// pasteCommand returns the command that writes the clipboard to stdout.
func pasteCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbpaste"); err == nil {
			return exec.Command("pbpaste"), nil
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard", "-o"), nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--output"), nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// Copy places the given text on the system clipboard.
func Copy(text string) error {
	cmd, err := copyCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Paste returns the current clipboard contents.
func Paste() (string, error) {
	cmd, err := pasteCommand()
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return string(out), nil
}
