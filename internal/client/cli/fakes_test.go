package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/rpc"
)

type fakeClient struct {
	loggedIn bool

	regEmail string
	regPass  []byte
	regFirst string
	verKey   string
	resendTo string
	loginPw  []byte
	oldPw    []byte
	newPw    []byte
	update   *rpc.UpdateProfileRequest

	account *rpc.Account
	users   *rpc.ListUsersResponse
	err     error
	pingErr error
	closed  bool
}

func (f *fakeClient) Register(_ context.Context, email string, pw []byte, first, _ string) (*rpc.Account, error) {
	f.regEmail, f.regPass, f.regFirst = email, append([]byte(nil), pw...), first
	return f.account, f.err
}
func (f *fakeClient) VerifyEmail(_ context.Context, key string) (*rpc.Account, error) {
	f.verKey = key
	return f.account, f.err
}
func (f *fakeClient) ResendVerification(_ context.Context, email string) error {
	f.resendTo = email
	return f.err
}
func (f *fakeClient) Login(_ context.Context, _ string, pw []byte) error {
	f.loginPw = append([]byte(nil), pw...)
	if f.err == nil {
		f.loggedIn = true
	}
	return f.err
}
func (f *fakeClient) Logout()        { f.loggedIn = false }
func (f *fakeClient) LoggedIn() bool { return f.loggedIn }
func (f *fakeClient) ChangePassword(_ context.Context, o, n []byte) error {
	f.oldPw, f.newPw = append([]byte(nil), o...), append([]byte(nil), n...)
	return f.err
}
func (f *fakeClient) Profile(context.Context) (*rpc.Account, error) { return f.account, f.err }
func (f *fakeClient) UpdateProfile(_ context.Context, req *rpc.UpdateProfileRequest) (*rpc.Account, error) {
	f.update = req
	return f.account, f.err
}
func (f *fakeClient) ListUsers(context.Context) (*rpc.ListUsersResponse, error) { return f.users, f.err }
func (f *fakeClient) Ping(context.Context) error                               { return f.pingErr }
func (f *fakeClient) Close() error                                              { f.closed = true; return nil }

// captureOutput replaces printlnFn and returns the collected lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := ""
		for i, v := range a {
			if i > 0 {
				s += " "
			}
			s += toString(v)
		}
		lines = append(lines, s)
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// stubInputs feeds answers to successive getSimpleText calls and passwords
// to successive getPassword calls.
func stubInputs(t *testing.T, answers []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
