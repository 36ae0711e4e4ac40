package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does NOT run the editor itself. Callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea suspends raw terminal mode.
type EnvEditor struct {
	command string
}

// NewEnvEditor creates an EnvEditor bound to the current $EDITOR.
func NewEnvEditor() *EnvEditor {
	cmd := strings.TrimSpace(os.Getenv("EDITOR"))
	if cmd == "" {
		cmd = "vi"
	}
	return &EnvEditor{command: cmd}
}

const instructionMarker = "-->"

func instructions(replyTo string) string {
	return "<!--\n" +
		"Replying to " + replyTo + "\n\n" +
		"- SAVE and EXIT to keep the draft (e.g., :wq in vi).\n" +
		"- The draft is not sent until you submit it with ctrl+d.\n" +
		instructionMarker + "\n\n"
}

// Cmd writes the draft under an instruction header to a temp file and
// returns the editor command plus the temp file path.
func (e *EnvEditor) Cmd(draft, replyTo string) (*exec.Cmd, string, error) {
	tmpFile, err := os.CreateTemp("", "igreply-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructions(replyTo) + draft); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	return exec.Command(e.command, tmpPath), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction header, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, instructionMarker); idx != -1 {
		content = content[idx+len(instructionMarker):]
	}
	return strings.TrimSpace(content), nil
}
