package console

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Writer delivers responses by overwriting the command file the game
// injector reads, then running the configured submit hook (typically
// a key-press tool bound to the injector's hotkey).
type Writer struct {
	execPath   string
	submitCmd  string
	pressDelay time.Duration
}

func NewWriter(execPath, submitCmd string) *Writer {
	return &Writer{
		execPath:   execPath,
		submitCmd:  submitCmd,
		pressDelay: 200 * time.Millisecond,
	}
}

// Say writes a chat command for the message and submits it. One call
// per response line.
func (w *Writer) Say(message string) error {
	if err := os.WriteFile(w.execPath, []byte("say "+message), 0o644); err != nil {
		return fmt.Errorf("write command file: %w", err)
	}
	return w.submit()
}

func (w *Writer) submit() error {
	if w.submitCmd == "" {
		return nil
	}
	// Give the injector a beat to notice the file before the key hits.
	time.Sleep(w.pressDelay)
	cmd := exec.Command("sh", "-c", w.submitCmd)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("submit command: %w", err)
	}
	return nil
}
