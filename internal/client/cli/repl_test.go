package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register", "") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) Whoami(ctx context.Context) error    { return f.record("whoami", "") }
func (f *fakeExec) Write(ctx context.Context) error     { return f.record("write", "") }
func (f *fakeExec) List(ctx context.Context) error      { return f.record("list", "") }
func (f *fakeExec) Drafts(ctx context.Context) error    { return f.record("drafts", "") }
func (f *fakeExec) Scheduled(ctx context.Context) error { return f.record("scheduled", "") }
func (f *fakeExec) Pending(ctx context.Context) error   { return f.record("pending", "") }
func (f *fakeExec) Users(ctx context.Context) error     { return f.record("users", "") }

func (f *fakeExec) Edit(ctx context.Context, id string) error    { return f.record("edit", id) }
func (f *fakeExec) Show(ctx context.Context, id string) error    { return f.record("show", id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error  { return f.record("delete", id) }
func (f *fakeExec) Approve(ctx context.Context, id string) error { return f.record("approve", id) }
func (f *fakeExec) Reject(ctx context.Context, id string) error  { return f.record("reject", id) }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"write",
		"list",
		"show 123",
		"drafts",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "write", "list", "show", "drafts", "logout"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgCommandsNeedArgs(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("show\nedit\ndelete\napprove\nreject\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_AdminCommandsDispatchWithArg(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("pending\napprove abc-123\nreject def-456\nexit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"pending", "approve", "reject"}
	if len(exec.calls) != len(want) {
		t.Fatalf("got calls %v, want %v", exec.calls, want)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("call %d: got %s, want %s", i, exec.calls[i], c)
		}
	}
	if exec.args[1] != "abc-123" || exec.args[2] != "def-456" {
		t.Fatalf("args not forwarded: %v", exec.args)
	}
}
