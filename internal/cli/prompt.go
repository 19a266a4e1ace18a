package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// passwordSource asks for one secret line.
type passwordSource func(prompt string) (string, error)

func terminalPassword(stdin *os.File, out io.Writer) passwordSource {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		secret, err := readPasswordNoEcho(stdin)
		fmt.Fprintln(out)
		return secret, err
	}
}

func readSecretLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirmedPassword asks twice and requires both answers to match.
func confirmedPassword(ask passwordSource) (string, error) {
	password, err := ask("Password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	confirmation, err := ask("Repeat password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if password != confirmation {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
