package hook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/hookwrap/hookwrap/internal/runner"
)

const (
	errC = "#include <stdio.h>\nint main(){int i;return;}"
	okC  = "#include <stdio.h>\n\nint main() {\n  return 0;\n}\n"

	formattedErrC = "#include <stdio.h>\nint main() {\n  int i;\n  return;\n}"
)

type call struct {
	dir  string
	name string
	args []string
}

// fakeRunner answers tool invocations from a function instead of spawning
// processes.
type fakeRunner struct {
	missing map[string]bool
	respond func(c call) runner.Result
	calls   []call
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", runner.ErrNotInstalled
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (runner.Result, error) {
	if _, err := f.LookPath(name); err != nil {
		return runner.Result{ExitCode: -1}, err
	}
	c := call{dir: dir, name: name, args: slices.Clone(args)}
	f.calls = append(f.calls, c)
	if name == "git" {
		return runner.Result{ExitCode: 128}, nil
	}
	if f.respond == nil {
		return runner.Result{}, nil
	}
	return f.respond(c), nil
}

func (f *fakeRunner) toolCalls(name string) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func writeSample(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// fakeClangFormat formats err.c the way clang-format --style=google does and
// leaves any other file as it is.
func fakeClangFormat(c call) runner.Result {
	file := c.args[len(c.args)-1]
	data, err := os.ReadFile(file)
	if err != nil {
		return runner.Result{Stderr: []byte(err.Error()), ExitCode: 1}
	}
	out := data
	if string(data) == errC {
		out = []byte(formattedErrC)
	}
	if slices.Contains(c.args, "-i") {
		if err := os.WriteFile(file, out, 0o644); err != nil {
			return runner.Result{Stderr: []byte(err.Error()), ExitCode: 1}
		}
		return runner.Result{}
	}
	return runner.Result{Stdout: out}
}

func TestClangFormatDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	errPath := writeSample(t, dir, "err.c", errC)
	okPath := writeSample(t, dir, "ok.c", okC)

	wantReport := errPath + "\n====================\n--- original\n\n+++ formatted\n\n@@ -1,2 +1,5 @@\n\n" +
		" #include <stdio.h>\n-int main(){int i;return;}\n+int main() {\n+  int i;\n+  return;\n+}\n"

	tests := []struct {
		name       string
		argv       []string
		wantStdout string
		wantCode   int
	}{
		{"flawed file", []string{errPath, "--style=google"}, wantReport, 1},
		{"flawed file in place", []string{errPath, "--style=google", "-i"}, wantReport, 1},
		{"clean file", []string{okPath, "--style=google"}, "", 0},
		{"clean file in place", []string{okPath, "--style=google", "-i"}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(errPath, []byte(errC), 0o644); err != nil {
				t.Fatal(err)
			}
			w := New(MustLookup(ClangFormat), &fakeRunner{respond: fakeClangFormat})
			out := w.Execute(context.Background(), tt.argv)
			if string(out.Stdout) != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", out.Stdout, tt.wantStdout)
			}
			if len(out.Stderr) != 0 {
				t.Errorf("Stderr = %q, want empty", out.Stderr)
			}
			if out.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", out.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatterNoDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	errPath := writeSample(t, dir, "err.c", errC)
	errCpp := writeSample(t, dir, "err.cpp", errC)

	fr := &fakeRunner{respond: fakeClangFormat}
	out := New(MustLookup(ClangFormat), fr).Execute(context.Background(), []string{"--style=google", "--no-diff", errPath, errCpp})
	if out.Code != 1 || len(out.Stdout) != 0 || len(out.Stderr) != 0 {
		t.Errorf("Execute() = %+v, want code 1 and no output", out)
	}
	calls := fr.toolCalls("clang-format")
	if len(calls) != 2 {
		t.Fatalf("clang-format ran %d times, want 2", len(calls))
	}
	for _, c := range calls {
		if slices.Contains(c.args, NoDiffFlag) {
			t.Errorf("wrapper-only flag passed to tool: %q", c.args)
		}
	}
}

func TestFormatterUnexpectedStderr(t *testing.T) {
	t.Parallel()

	path := writeSample(t, t.TempDir(), "err.c", errC)
	fr := &fakeRunner{respond: func(call) runner.Result {
		return runner.Result{Stderr: []byte("Invalid value for -style"), ExitCode: 1}
	}}
	out := New(MustLookup(ClangFormat), fr).Execute(context.Background(), []string{"--style=nope", path})

	want := "Problem with clang-format: Unexpected Stderr/return code received when analyzing " + path + "."
	if !strings.HasPrefix(string(out.Stderr), want) {
		t.Errorf("Stderr = %q, want prefix %q", out.Stderr, want)
	}
	if !strings.HasSuffix(string(out.Stderr), "Invalid value for -style\n") {
		t.Errorf("Stderr = %q, want tool output as details", out.Stderr)
	}
	if out.Code != 1 {
		t.Errorf("Code = %d, want 1", out.Code)
	}
}

func TestUncrustifyFileFlagAndGeneratedConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSample(t, dir, "ok.c", okC)
	fr := &fakeRunner{respond: func(c call) runner.Result {
		if slices.Contains(c.args, "--show-config") {
			return runner.Result{Stdout: []byte("indent_columns = 2\n")}
		}
		data, _ := os.ReadFile(c.args[len(c.args)-1])
		return runner.Result{Stdout: data}
	}}
	w := New(MustLookup(Uncrustify), fr)
	w.Dir = dir

	out := w.Execute(context.Background(), []string{path})
	if out.Code != 0 {
		t.Fatalf("Execute() = %+v, want code 0", out)
	}
	if _, err := os.Stat(filepath.Join(dir, UncrustifyDefaultsFile)); err != nil {
		t.Errorf("defaults file not generated: %v", err)
	}
	calls := fr.toolCalls("uncrustify")
	last := calls[len(calls)-1].args
	want := []string{"-q", "-c", UncrustifyDefaultsFile, "-f", path}
	if !slices.Equal(last, want) {
		t.Errorf("uncrustify args = %q, want %q", last, want)
	}
}

func TestUncrustifyReplaceDropsFileFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSample(t, dir, "ok.c", okC)
	fr := &fakeRunner{}
	out := New(MustLookup(Uncrustify), fr).Execute(context.Background(), []string{"-c", "my.cfg", "--replace", "--no-backup", path})
	if out.Code != 0 {
		t.Fatalf("Execute() = %+v", out)
	}
	got := fr.toolCalls("uncrustify")[0].args
	want := []string{"-c", "my.cfg", "--replace", "--no-backup", "-q", path}
	if !slices.Equal(got, want) {
		t.Errorf("uncrustify args = %q, want %q", got, want)
	}
}

func TestToolNotInstalled(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{missing: map[string]bool{"cppcheck": true}}
	out := New(MustLookup(Cppcheck), fr).Execute(context.Background(), []string{"a.c"})

	want := "Problem with cppcheck: cppcheck not found\nMake sure cppcheck is installed and on your PATH.\n"
	if string(out.Stderr) != want || out.Code != 1 {
		t.Errorf("Execute() = %q code %d, want %q code 1", out.Stderr, out.Code, want)
	}
}

func TestMissingArguments(t *testing.T) {
	t.Parallel()

	out := New(MustLookup(Cpplint), &fakeRunner{}).Execute(context.Background(), nil)
	want := "Problem with cpplint: Missing arguments\nNo file arguments found and no arguments to tool\n"
	if string(out.Stderr) != want || out.Code != 1 {
		t.Errorf("Execute() = %q code %d", out.Stderr, out.Code)
	}

	fr := &fakeRunner{}
	out = New(MustLookup(ClangTidy), fr).Execute(context.Background(), nil)
	if out.Code != 0 {
		t.Errorf("clang-tidy without arguments = %+v, want a plain run", out)
	}
	if n := len(fr.toolCalls("clang-tidy")); n != 1 {
		t.Errorf("clang-tidy ran %d times, want 1", n)
	}
}

func TestCppcheckDefaultsAndOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	okPath := writeSample(t, dir, "ok.c", okC)
	errPath := writeSample(t, dir, "err.c", errC)
	fr := &fakeRunner{respond: func(c call) runner.Result {
		if c.args[0] == errPath {
			return runner.Result{Stderr: []byte(errPath + ":2:16: style: Unused variable: i [unusedVariable]\n"), ExitCode: 1}
		}
		return runner.Result{}
	}}

	out := New(MustLookup(Cppcheck), fr).Execute(context.Background(), []string{errPath, okPath})
	if out.Code != 1 {
		t.Errorf("Code = %d, want 1", out.Code)
	}
	if !strings.Contains(string(out.Stderr), "Unused variable: i") || len(out.Stdout) != 0 {
		t.Errorf("Execute() = %+v, want findings on stderr", out)
	}

	calls := fr.toolCalls("cppcheck")
	if len(calls) != 2 {
		t.Fatalf("cppcheck ran %d times, want once per file", len(calls))
	}
	want := []string{errPath, "-q", "--error-exitcode=1",
		"--suppress=unmatchedSuppression", "--suppress=missingIncludeSystem", "--suppress=unusedFunction"}
	if !slices.Equal(calls[0].args, want) {
		t.Errorf("cppcheck args = %q, want %q", calls[0].args, want)
	}
}

func TestCpplintFlagsBeforeFile(t *testing.T) {
	t.Parallel()

	path := writeSample(t, t.TempDir(), "ok.c", okC)
	tests := []struct {
		argv []string
		want []string
	}{
		{[]string{path}, []string{"--verbose=0", path}},
		{[]string{path, "--v=3", "--quiet"}, []string{"--v=3", "--quiet", path}},
	}
	for _, tt := range tests {
		fr := &fakeRunner{}
		New(MustLookup(Cpplint), fr).Execute(context.Background(), tt.argv)
		if got := fr.toolCalls("cpplint")[0].args; !slices.Equal(got, tt.want) {
			t.Errorf("cpplint args = %q, want %q", got, tt.want)
		}
	}
}

func TestClangTidy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	errPath := writeSample(t, dir, "err.c", errC)
	okPath := writeSample(t, dir, "ok.c", okC)
	diag := errPath + ":2:18: error: non-void function 'main' should return a value [clang-diagnostic-return-type]\n"

	respond := func(c call) runner.Result {
		if c.args[0] == errPath {
			return runner.Result{
				Stdout:   []byte(diag),
				Stderr:   []byte("2 warnings generated.\n1 error generated.\nError while processing " + errPath + ".\n"),
				ExitCode: 1,
			}
		}
		return runner.Result{Stderr: []byte("1 warning generated.\n")}
	}

	t.Run("stops at first failing file", func(t *testing.T) {
		fr := &fakeRunner{respond: respond}
		out := New(MustLookup(ClangTidy), fr).Execute(context.Background(),
			[]string{errPath, okPath, "-quiet", "-checks=clang-diagnostic-return-type"})
		want := diag + "1 error generated.\nError while processing " + errPath + ".\n"
		if string(out.Stderr) != want || out.Code != 1 {
			t.Errorf("Execute() = %q code %d, want %q code 1", out.Stderr, out.Code, want)
		}
		if n := len(fr.toolCalls("clang-tidy")); n != 1 {
			t.Errorf("clang-tidy ran %d times, want 1", n)
		}
		args := fr.toolCalls("clang-tidy")[0].args
		wantArgs := []string{errPath, "-quiet", "-checks=clang-diagnostic-return-type", "--", "-DCMAKE_EXPORT_COMPILE_COMMANDS"}
		if !slices.Equal(args, wantArgs) {
			t.Errorf("clang-tidy args = %q, want %q", args, wantArgs)
		}
	})

	t.Run("warnings alone pass", func(t *testing.T) {
		out := New(MustLookup(ClangTidy), &fakeRunner{respond: respond}).Execute(context.Background(), []string{okPath, "--fix-errors"})
		if out.Code != 0 || len(out.Stderr) != 0 {
			t.Errorf("Execute() = %+v, want clean pass", out)
		}
	})

	t.Run("fix-errors fails on remaining stderr", func(t *testing.T) {
		fr := &fakeRunner{respond: func(call) runner.Result {
			return runner.Result{Stderr: []byte("note: FIX-IT applied suggested code changes\n")}
		}}
		out := New(MustLookup(ClangTidy), fr).Execute(context.Background(), []string{okPath, "--fix-errors"})
		if out.Code != 1 {
			t.Errorf("Code = %d, want 1", out.Code)
		}
	})
}

func TestIncludeWhatYouUse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	errPath := writeSample(t, dir, "err.c", errC)
	okPath := writeSample(t, dir, "ok.c", okC)
	fr := &fakeRunner{respond: func(c call) runner.Result {
		if c.args[0] == errPath {
			return runner.Result{Stderr: []byte(errPath + ":2:18: error: non-void function 'main' should return a value [-Wreturn-type]\n"), ExitCode: 3}
		}
		return runner.Result{Stderr: []byte("\n(" + okPath + " has correct #includes/fwd-decls)\n"), ExitCode: 3}
	}}
	w := New(MustLookup(IncludeWhatYouUse), fr)

	out := w.Execute(context.Background(), []string{errPath})
	if out.Code != 3 {
		t.Errorf("Code = %d, want native 3", out.Code)
	}
	if !strings.Contains(string(out.Stderr), "should return a value") {
		t.Errorf("Stderr = %q", out.Stderr)
	}

	out = w.Execute(context.Background(), []string{okPath})
	if out.Code != 0 || len(out.Stderr) != 0 {
		t.Errorf("clean file = %+v, want code 0 and no output", out)
	}
}

func TestOCLintNativeCode(t *testing.T) {
	t.Parallel()

	path := writeSample(t, t.TempDir(), "err.c", errC)
	fr := &fakeRunner{respond: func(call) runner.Result {
		return runner.Result{Stdout: []byte("\nOCLint Report\n"), ExitCode: 6}
	}}
	out := New(MustLookup(OCLint), fr).Execute(context.Background(), []string{path, "--enable-global-analysis", "--", "-std=c18"})
	if out.Code != 6 || string(out.Stderr) != "\nOCLint Report\n" {
		t.Errorf("Execute() = %q code %d", out.Stderr, out.Code)
	}
}

func TestVersionPin(t *testing.T) {
	t.Parallel()

	path := writeSample(t, t.TempDir(), "ok.c", okC)
	respond := func(c call) runner.Result {
		if slices.Equal(c.args, []string{"--version"}) {
			return runner.Result{Stdout: []byte("Ubuntu clang-format version 18.1.3 (1ubuntu1)\n")}
		}
		return fakeClangFormat(c)
	}

	out := New(MustLookup(ClangFormat), &fakeRunner{respond: respond}).Execute(context.Background(), []string{"--version", "18", path})
	if out.Code != 0 {
		t.Errorf("matching pin = %+v, want pass", out)
	}

	out = New(MustLookup(ClangFormat), &fakeRunner{respond: respond}).Execute(context.Background(), []string{"--version=17.0", path})
	if out.Code != 1 || !strings.HasPrefix(string(out.Stderr), "Problem with clang-format: Version of clang-format is wrong\nExpected version: 17.0\nFound version: 18.1.3\n") {
		t.Errorf("mismatching pin = %q code %d", out.Stderr, out.Code)
	}
}

func TestPinMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pin, actual string
		want        bool
	}{
		{"18", "18.1.3", true},
		{"18.1", "18.1.3", true},
		{"18.1.3", "18.1.3", true},
		{"1", "18.1.3", false},
		{"17", "18.1.3", false},
		{"1.89", "1.89", true},
		{"22.02", "22.02", true},
		{"0.13", "0.13.1", true},
	}
	for _, tt := range tests {
		if got := pinMatches(tt.pin, tt.actual); got != tt.want {
			t.Errorf("pinMatches(%q, %q) = %v, want %v", tt.pin, tt.actual, got, tt.want)
		}
	}
}

func TestVersionUnrecognized(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{respond: func(call) runner.Result {
		return runner.Result{Stdout: []byte("something else entirely\n")}
	}}
	_, err := New(MustLookup(Cppcheck), fr).Version(context.Background())
	var pe *ProblemError
	if !errors.As(err, &pe) || pe.Problem != "getting version" {
		t.Errorf("Version() error = %v, want getting version problem", err)
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	t.Parallel()

	path := writeSample(t, t.TempDir(), "err.c", errC)
	w := New(MustLookup(ClangFormat), &fakeRunner{respond: fakeClangFormat})
	first := w.Execute(context.Background(), []string{"--style=google", path})
	second := w.Execute(context.Background(), []string{"--style=google", path})
	if string(first.Stdout) != string(second.Stdout) || first.Code != second.Code {
		t.Errorf("runs differ: %+v vs %+v", first, second)
	}
}

func TestStagedFilesUsedWhenNoneGiven(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSample(t, dir, "err.c", errC)
	fr := &staged{fakeRunner: fakeRunner{respond: func(c call) runner.Result {
		return runner.Result{Stdout: []byte("finding\n"), ExitCode: 1}
	}}, out: "err.c\nremoved.c\n"}
	w := New(MustLookup(Cppcheck), fr)
	w.Dir = dir

	out := w.Execute(context.Background(), nil)
	if out.Code != 1 {
		t.Fatalf("Execute() = %+v", out)
	}
	calls := fr.toolCalls("cppcheck")
	if len(calls) != 1 || calls[0].args[0] != "err.c" || calls[0].dir != dir {
		t.Errorf("cppcheck calls = %+v, want one run on err.c in %s", calls, dir)
	}
}

// staged answers git with a fixed list of added files.
type staged struct {
	fakeRunner
	out string
}

func (s *staged) Run(ctx context.Context, dir, name string, args ...string) (runner.Result, error) {
	if name == "git" {
		return runner.Result{Stdout: []byte(s.out)}, nil
	}
	return s.fakeRunner.Run(ctx, dir, name, args...)
}

func TestNormalizeArgsHonorsAlternateSpellings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool string
		in   []string
		want []string
	}{
		{
			name: "clang-tidy double dash checks",
			tool: ClangTidy,
			in:   []string{"--checks=-*,clang-diagnostic-*"},
			want: []string{"--checks=-*,clang-diagnostic-*", "--", "-DCMAKE_EXPORT_COMPILE_COMMANDS"},
		},
		{
			name: "clang-tidy single dash checks",
			tool: ClangTidy,
			in:   []string{"-checks=-*"},
			want: []string{"-checks=-*", "--", "-DCMAKE_EXPORT_COMPILE_COMMANDS"},
		},
		{
			name: "clang-tidy double dash compilation database",
			tool: ClangTidy,
			in:   []string{"--p=build"},
			want: []string{"--p=build", "-checks=*"},
		},
		{
			name: "cppcheck long quiet",
			tool: Cppcheck,
			in:   []string{"--quiet"},
			want: []string{"--quiet", "--error-exitcode=1",
				"--suppress=unmatchedSuppression", "--suppress=missingIncludeSystem", "--suppress=unusedFunction"},
		},
		{
			name: "uncrustify long quiet",
			tool: Uncrustify,
			in:   []string{"--quiet", "-c", "my.cfg"},
			want: []string{"--quiet", "-c", "my.cfg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New(MustLookup(tt.tool), nil).NormalizeArgs(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnalyzerWithoutFiles(t *testing.T) {
	t.Parallel()

	t.Run("file bound tools do nothing", func(t *testing.T) {
		for _, id := range []string{Cppcheck, Cpplint, IncludeWhatYouUse} {
			fr := &fakeRunner{respond: func(call) runner.Result {
				return runner.Result{Stderr: []byte("no C or C++ source files found\n"), ExitCode: 1}
			}}
			w := New(MustLookup(id), fr)
			w.Dir = t.TempDir()
			out := w.Execute(context.Background(), []string{"--std=c99"})
			if out.Code != 0 || len(out.Stderr) != 0 {
				t.Errorf("%s: Execute() = %+v, want a clean pass", id, out)
			}
			if n := len(fr.toolCalls(MustLookup(id).Binary)); n != 0 {
				t.Errorf("%s ran %d times without a file", id, n)
			}
		}
	})

	t.Run("clang-tidy still runs once", func(t *testing.T) {
		fr := &fakeRunner{}
		w := New(MustLookup(ClangTidy), fr)
		w.Dir = t.TempDir()
		w.Execute(context.Background(), []string{"-p=build"})
		if n := len(fr.toolCalls("clang-tidy")); n != 1 {
			t.Errorf("clang-tidy ran %d times, want 1", n)
		}
	})
}
