//go:build windows

package cli

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func readPasswordNoEcho(stdin *os.File) (string, error) {
	handle := windows.Handle(stdin.Fd())
	var saved uint32
	if err := windows.GetConsoleMode(handle, &saved); err != nil {
		return "", fmt.Errorf("stdin is not a console: %w", err)
	}

	hidden := (saved &^ windows.ENABLE_ECHO_INPUT) | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT
	if err := windows.SetConsoleMode(handle, hidden); err != nil {
		return "", fmt.Errorf("disable echo: %w", err)
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, saved)
	}()

	return readSecretLine(stdin)
}
