package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupStoresPendingVerification(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("password1"), nil
	}

	client := &fakeClient{}
	// name, email, location, then cancel out of the verification prompt
	a, out := newTestApp(client, "Alice\nalice@example.com\nRiga\ncancel\n")
	p := a.pending.(*fakePending)

	a.Signup(context.Background())

	require.Len(t, p.saved, 1)
	require.Equal(t, "alice@example.com", p.saved[0].Email)
	require.Equal(t, "Alice", p.saved[0].UserName)
	require.Nil(t, p.stored) // cancelled, so the resume state is gone again
	require.Contains(t, out.String(), "A 6-digit code was sent to alice@example.com")
}
