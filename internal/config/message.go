package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinMessage is the --message value that reads the commit message from stdin
const StdinMessage = "-"

// ResolveMessage returns message, or the content of stdin when message is
// StdinMessage. A terminal or empty stdin yields DefaultMessage.
func ResolveMessage(message string, stdin *os.File) (string, error) {
	if message != StdinMessage {
		return message, nil
	}

	stat, err := stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to inspect stdin: %w", err)
	}

	// A terminal would block waiting for input
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return DefaultMessage, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read commit message from stdin: %w", err)
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg, nil
	}
	return DefaultMessage, nil
}
