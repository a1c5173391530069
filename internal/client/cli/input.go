package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/avelichko/skillswap/internal/common"
)

// test seam
var readPassword = term.ReadPassword

// GetSimpleText prompts for a single line of input and returns it trimmed.
func GetSimpleText(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprintf(w, "%s: ", prompt)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts for a password with terminal echo disabled.
func GetPassword(fd int, w io.Writer, prompt string) (string, error) {
	fmt.Fprintf(w, "%s: ", prompt)
	b, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	password := string(b)
	common.WipeByteArray(b)
	return password, nil
}
