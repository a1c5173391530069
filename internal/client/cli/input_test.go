package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "alice@example.com\n", "alice@example.com"},
		{"trims spaces", "  hello world  \n", "hello world"},
		{"empty line", "\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), &out, "Email")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Contains(t, out.String(), "Email: ")
		})
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), &out, "Email")
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	buf := []byte("s3cret")
	readPassword = func(fd int) ([]byte, error) {
		return buf, nil
	}

	var out bytes.Buffer
	got, err := GetPassword(0, &out, "Password")
	require.NoError(t, err)
	require.Equal(t, "s3cret", got)
	require.Contains(t, out.String(), "Password: ")
	// the raw buffer is wiped once the string copy is made
	require.Equal(t, make([]byte, len(buf)), buf)
}
