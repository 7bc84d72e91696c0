package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) AddNote(ctx context.Context) error {
	f.calls = append(f.calls, "add")
	return nil
}
func (f *fakeExec) ListNotes(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) DeleteNote(ctx context.Context) error {
	f.calls = append(f.calls, "delete")
	return nil
}
func (f *fakeExec) Wipe(ctx context.Context) error {
	f.calls = append(f.calls, "wipe")
	return nil
}

func runWith(t *testing.T, exec *fakeExec, lines ...string) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "" }, sc)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	runWith(t, exec,
		"help",
		"login",
		"add",
		"list",
		"delete",
		"whoami",
		"logout",
		"unknowncmd",
		"exit",
	)

	want := []string{"login", "add", "list", "delete", "whoami", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch at %d: got %v, want %v", i, exec.calls, want)
		}
	}
}

func TestRunREPL_NoteCommandsRequireLogin(t *testing.T) {
	exec := &fakeExec{loggedIn: false}
	runWith(t, exec, "add", "list", "delete", "logout", "exit")

	if len(exec.calls) != 0 {
		t.Fatalf("expected no handler calls while logged out, got %v", exec.calls)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	runWith(t, exec, "help")
	// Reaching here without hanging is the assertion.
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	exec := &fakeExec{}
	runWith(t, exec, "", "   ", "register", "exit")

	if len(exec.calls) != 1 || exec.calls[0] != "register" {
		t.Fatalf("got %v", exec.calls)
	}
}
