package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
)

// execStub records which command handlers the dispatcher invoked.
type execStub struct {
	loggedIn bool
	calls    []string
	lastArgs []string
	err      error
}

func (s *execStub) record(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *execStub) isLoggedIn() bool                     { return s.loggedIn }
func (s *execStub) Register(ctx context.Context) error   { return s.record("register") }
func (s *execStub) Login(ctx context.Context) error      { return s.record("login") }
func (s *execStub) Logout(ctx context.Context) error     { return s.record("logout") }
func (s *execStub) Whoami(ctx context.Context) error     { return s.record("whoami") }
func (s *execStub) SelectFile(ctx context.Context) error { return s.record("select") }
func (s *execStub) Upload(ctx context.Context) error     { return s.record("upload") }
func (s *execStub) History(ctx context.Context) error    { return s.record("history") }
func (s *execStub) Users(ctx context.Context) error      { return s.record("users") }

func (s *execStub) SetMode(ctx context.Context, arg string) error {
	s.lastArgs = []string{arg}
	return s.record("mode")
}

func (s *execStub) SetRole(ctx context.Context, args []string) error {
	s.lastArgs = args
	return s.record("setrole")
}

func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	orig := printlnFn
	var sb strings.Builder
	printlnFn = func(a ...any) (int, error) {
		fmt.Fprintln(&sb, a...)
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

func TestDispatchRouting(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"register", "register"},
		{"login", "login"},
		{"logout", "logout"},
		{"whoami", "whoami"},
		{"select", "select"},
		{"upload", "upload"},
		{"history", "history"},
		{"l", "history"},
		{"users", "users"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			captureOutput(t)
			stub := &execStub{}

			done := dispatch(context.Background(), stub, tt.line)

			assert.False(t, done)
			assert.Equal(t, []string{tt.want}, stub.calls)
		})
	}
}

func TestDispatchArgs(t *testing.T) {
	captureOutput(t)
	stub := &execStub{}

	dispatch(context.Background(), stub, "mode pixelate")
	assert.Equal(t, []string{"pixelate"}, stub.lastArgs)

	dispatch(context.Background(), stub, "setrole 7 pro_user")
	assert.Equal(t, []string{"7", "pro_user"}, stub.lastArgs)
}

func TestDispatchModeUsage(t *testing.T) {
	out := captureOutput(t)
	stub := &execStub{}

	dispatch(context.Background(), stub, "mode")

	assert.Empty(t, stub.calls)
	assert.Contains(t, out.String(), "Usage: mode")
}

func TestDispatchExit(t *testing.T) {
	captureOutput(t)
	stub := &execStub{}

	assert.True(t, dispatch(context.Background(), stub, "exit"))
	assert.True(t, dispatch(context.Background(), stub, "quit"))
}

func TestDispatchBlankAndUnknown(t *testing.T) {
	out := captureOutput(t)
	stub := &execStub{}

	assert.False(t, dispatch(context.Background(), stub, "   "))
	assert.Empty(t, stub.calls)

	assert.False(t, dispatch(context.Background(), stub, "frobnicate"))
	assert.Contains(t, out.String(), "Unknown command")
}

func TestDispatchHelpByState(t *testing.T) {
	out := captureOutput(t)

	dispatch(context.Background(), &execStub{loggedIn: false}, "help")
	assert.Contains(t, out.String(), "register, login")

	out.Reset()
	dispatch(context.Background(), &execStub{loggedIn: true}, "help")
	assert.Contains(t, out.String(), "upload")
	assert.Contains(t, out.String(), "setrole")
}

func TestDispatchReportsForcedLogout(t *testing.T) {
	out := captureOutput(t)
	stub := &execStub{err: fmt.Errorf("%w: token expired", api.ErrUnauthorized)}

	dispatch(context.Background(), stub, "upload")

	assert.Contains(t, out.String(), "logged out")
}
