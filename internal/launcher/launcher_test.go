// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jsdoc/jsdocrun/internal/issue"
	"github.com/jsdoc/jsdocrun/internal/jsshell"
	"github.com/jsdoc/jsdocrun/internal/selfloc"
	"github.com/jsdoc/jsdocrun/internal/testutil"
	"github.com/jsdoc/jsdocrun/pkg/types"
)

// fixedLocation returns a LocateFunc reporting loc.
func fixedLocation(loc string) LocateFunc {
	return func() (selfloc.Location, error) { return selfloc.Location(loc), nil }
}

// recorder is an EntryPoint that records the argument vector it received.
type recorder struct {
	calls int
	argv  []string
	code  types.ExitCode
}

func (r *recorder) main(_ context.Context, argv []string) (types.ExitCode, error) {
	r.calls++
	r.argv = slices.Clone(argv)
	return r.code, nil
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if filepath.Separator != '/' {
		t.Skip("fixtures use POSIX paths")
	}
}

func TestBuildArgumentVector(t *testing.T) {
	t.Parallel()

	const s = ScriptPath("/opt/tool/main.js")

	tests := []struct {
		name string
		args []string
		want ArgumentVector
	}{
		{
			name: "with arguments",
			args: []string{"-a", "1"},
			want: ArgumentVector{"/opt/tool/main.js", "/opt/tool/main.js", "-a", "1"},
		},
		{
			name: "no arguments",
			args: nil,
			want: ArgumentVector{"/opt/tool/main.js", "/opt/tool/main.js"},
		},
		{
			name: "opaque strings are forwarded untouched",
			args: []string{"--help", "", "a b", "main.js"},
			want: ArgumentVector{"/opt/tool/main.js", "/opt/tool/main.js", "--help", "", "a b", "main.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildArgumentVector(s, tt.args)
			if !slices.Equal(got, tt.want) {
				t.Errorf("BuildArgumentVector() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildArgumentVector_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	args := make([]string, 1, 8)
	args[0] = "x"
	argv := BuildArgumentVector("/opt/tool/main.js", args)
	argv[2] = "changed"
	if args[0] != "x" {
		t.Errorf("caller's slice was modified: %q", args)
	}
}

func TestScriptPathFor(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	got := ScriptPathFor("/opt/tool/run.bin", "main.js")
	if got != "/opt/tool/main.js" {
		t.Errorf("ScriptPathFor() = %q, want /opt/tool/main.js", got)
	}
}

func TestRun_Scenarios(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "flags and values",
			args: []string{"-a", "1"},
			want: []string{"/opt/tool/main.js", "/opt/tool/main.js", "-a", "1"},
		},
		{
			name: "no arguments",
			args: []string{},
			want: []string{"/opt/tool/main.js", "/opt/tool/main.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{code: 5}
			l := &Launcher{Locate: fixedLocation("/opt/tool/run.bin"), Interpreter: rec.main}

			code, err := l.Run(t.Context(), tt.args)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if code != 5 {
				t.Errorf("Run() code = %d, want interpreter status 5", code)
			}
			if rec.calls != 1 {
				t.Errorf("interpreter called %d times, want 1", rec.calls)
			}
			if !slices.Equal(rec.argv, tt.want) {
				t.Errorf("argv = %q, want %q", rec.argv, tt.want)
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := &Launcher{Locate: fixedLocation(filepath.Join(t.TempDir(), "run.bin")), Interpreter: rec.main}

	if _, err := l.Run(t.Context(), []string{"x"}); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	first := rec.argv
	if _, err := l.Run(t.Context(), []string{"x"}); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if !slices.Equal(first, rec.argv) {
		t.Errorf("argument vectors differ: %q vs %q", first, rec.argv)
	}
}

func TestRun_LocationFailureSkipsInterpreter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		locate LocateFunc
	}{
		{
			name: "resolver error",
			locate: func() (selfloc.Location, error) {
				return "", &selfloc.ResolutionError{Cause: errors.New("no /proc")}
			},
		},
		{
			name:   "empty location",
			locate: func() (selfloc.Location, error) { return "", nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			l := &Launcher{Locate: tt.locate, Interpreter: rec.main}

			code, err := l.Run(t.Context(), []string{"-a"})
			if err == nil {
				t.Fatal("Run() should fail when the location cannot be resolved")
			}
			if !errors.Is(err, selfloc.ErrLocationUnresolved) {
				t.Errorf("error = %v, want ErrLocationUnresolved", err)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.IssueID != issue.LocationUnresolvedId {
				t.Errorf("error should carry the location catalog entry, got %v", err)
			}
			if code == types.ExitSuccess {
				t.Error("Run() returned success on failure")
			}
			if rec.calls != 0 {
				t.Errorf("interpreter called %d times, want 0", rec.calls)
			}
		})
	}
}

func TestRun_NoInterpreter(t *testing.T) {
	t.Parallel()

	l := &Launcher{Locate: fixedLocation("/opt/tool/run.bin")}
	if _, err := l.Run(t.Context(), nil); err == nil {
		t.Error("Run() without an interpreter should fail")
	}
}

func TestPrepare_Options(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	l := &Launcher{
		Locate:     fixedLocation("/opt/tool/run.bin"),
		ScriptName: "cli.js",
		SinglePath: true,
	}

	script, argv, err := l.Prepare([]string{"a"})
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if script != "/opt/tool/cli.js" {
		t.Errorf("script = %q, want /opt/tool/cli.js", script)
	}
	if want := (ArgumentVector{"/opt/tool/cli.js", "a"}); !slices.Equal(argv, want) {
		t.Errorf("argv = %q, want %q", argv, want)
	}
}

func TestPrepare_RealExecutableIsAbsolute(t *testing.T) {
	t.Parallel()

	script, _, err := (&Launcher{}).Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if !filepath.IsAbs(script.String()) {
		t.Errorf("script path %q is not absolute", script)
	}
	if filepath.Base(script.String()) != DefaultScriptName {
		t.Errorf("script path %q does not end in %s", script, DefaultScriptName)
	}
}

func TestRun_WithEmbeddedShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `print(arguments[0]); print(arguments.slice(1).join("|"));`
	testutil.MustWriteFile(t, dir, "main.js", src, 0o644)

	out := filepath.Join(dir, "out.txt")
	f, err := os.Create(out)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	l := &Launcher{
		Locate: fixedLocation(filepath.Join(dir, "run.bin")),
		Interpreter: func(ctx context.Context, argv []string) (types.ExitCode, error) {
			return jsshell.Main(ctx, argv, jsshell.WithStdout(f), jsshell.WithStderr(f))
		},
	}

	code, err := l.Run(t.Context(), []string{"-a", "1"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if code != types.ExitSuccess {
		t.Errorf("code = %d, want 0", code)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := filepath.Join(dir, "main.js") + "\n-a|1\n"
	if string(got) != want {
		t.Errorf("script output = %q, want %q", got, want)
	}
}
