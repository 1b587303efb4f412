package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCommand(t *testing.T, args ...string) runResult {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr strings.Builder
	code := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return runResult{code, stdout.String(), stderr.String()}
}

func TestRun_eval(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want runResult
	}{
		{"factorial", []string{"-e", "6!"}, runResult{0, "720\n", ""}},
		{"rpn", []string{"-e", "2 3+11*1+"}, runResult{0, "34\n", ""}},
		{"concat", []string{"-e", `"Hi""Hello!"+`}, runResult{0, "HiHello!\n", ""}},
		{"roman", []string{"-e", "X 1+"}, runResult{0, "11\n", ""}},
		{"unknown word", []string{"-e", "10 1x"}, runResult{0, "0\n", ""}},
		{"list result", []string{"-e", "1 3 range"}, runResult{0, "1 2 3\n", ""}},
		{"empty stack", []string{"-e", "clear"}, runResult{0, "[]\n", ""}},
		{"print line", []string{"-e", "1 ,"}, runResult{0, "1\n", ""}},
		{"print", []string{"-e", `"a" .`}, runResult{0, "a ", ""}},
		{"print then result", []string{"-e", `"x" , 5`}, runResult{0, "x\n5\n", ""}},
		{"compress round trip", []string{"-e", `"Hello" cmp dmp`}, runResult{0, "Hello\n", ""}},
		{"zstd round trip", []string{"-codec", "zstd", "-e", `"Hello" cmp dmp`}, runResult{0, "Hello\n", ""}},

		{"underflow", []string{"-e", "1 +"}, runResult{1, "",
			"ERROR: stack underflow: + needs 2 values, have 1\n"}},
		{"type mismatch", []string{"-e", `"a" 1+`}, runResult{1, "",
			"ERROR: type mismatch: + expected Text, found Number\n"}},
		{"bad jump", []string{"-e", "2 5 jmp"}, runResult{1, "",
			"ERROR: invalid jump target 5, tape length is 3\n"}},
		{"parse error", []string{"-e", `1 "abc`}, runResult{1, "",
			"ERROR: <eval>:1:3: parse error at offset 2: unterminated string: missing closing delimiter\n"}},
		{"step limit", []string{"-max-steps", "10", "-e", "2 0jmp"}, runResult{1, "",
			"ERROR: step limit of 10 exceeded\n"}},
		{"range limit", []string{"-max-range", "5", "-e", "1 10 range"}, runResult{1, "",
			"ERROR: limit exceeded: range would produce 10 values, limit is 5\n"}},
		{"unknown codec", []string{"-codec", "bogus", "-e", "1"}, runResult{1, "",
			`ERROR: unknown codec "bogus", want one of ["flate" "zstd"]` + "\n"}},
		{"bad flag", []string{"-nope"}, runResult{2, "", ""}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := runCommand(t, tc.args...)
			assert.Equal(t, tc.want.code, res.code, "expected exit code")
			assert.Equal(t, tc.want.stdout, res.stdout, "expected stdout")
			if tc.want.code == 2 {
				assert.Contains(t, res.stderr, "usage: putt")
			} else {
				assert.Equal(t, tc.want.stderr, res.stderr, "expected stderr")
			}
		})
	}
}

func TestRun_help(t *testing.T) {
	res := runCommand(t, "-h")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "usage: putt [flags] [FILE | -]")
	assert.Contains(t, res.stderr, "-max-steps")
}

func TestRun_trace(t *testing.T) {
	res := runCommand(t, "-trace", "-e", "1 2+")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "3\n", res.stdout)
	assert.Contains(t, res.stderr, "TRACE: > token @0 1\n")
	assert.Contains(t, res.stderr, "TRACE: @ push @0 1 -- s:[]\n")
	assert.Contains(t, res.stderr, "TRACE: @ exec @2 + -- s:[1 2]\n")
}

func TestRun_dump(t *testing.T) {
	res := runCommand(t, "-dump", "-e", "1 +")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "DUMP: # VM Dump\n")
	assert.Contains(t, res.stderr, "DUMP:   stack: [1]\n")
	assert.Contains(t, res.stderr, "DUMP: > @1 +\n")
	assert.Contains(t, res.stderr, "ERROR: stack underflow")
}

func TestRun_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fact.putt")
	require.NoError(t, os.WriteFile(path, []byte("6!\n"), 0644))

	res := runCommand(t, path)
	assert.Equal(t, runResult{0, "720\n", ""}, res)

	bad := filepath.Join(dir, "bad.putt")
	require.NoError(t, os.WriteFile(bad, []byte("1\n2 @"), 0644))
	res = runCommand(t, bad)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "ERROR: "+bad+":2:3: parse error at offset 4: unexpected character '@'\n", res.stderr)

	res = runCommand(t, filepath.Join(dir, "missing.putt"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "ERROR: open ")
}

func TestRun_tee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	res := runCommand(t, "-tee", path, "-e", `"x" , 5`)
	assert.Equal(t, runResult{0, "x\n5\n", ""}, res)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n5\n", string(b))
}

func TestRun_config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codec: zstd\nmax_steps: 10\n"), 0644))

	res := runCommand(t, "-config", path, "-e", "2 0jmp")
	assert.Equal(t, runResult{1, "", "ERROR: step limit of 10 exceeded\n"}, res)

	res = runCommand(t, "-config", path, "-max-steps", "100", "-e", "2 0jmp")
	assert.Equal(t, runResult{1, "", "ERROR: step limit of 100 exceeded\n"}, res)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("bogus: 1\n"), 0644))
	res = runCommand(t, "-config", bad, "-e", "1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "field bogus not found")
}

func TestRun_stdin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr strings.Builder
	code := run(context.Background(), []string{"-"}, strings.NewReader("2 3+11*1+\n"), &stdout, &stderr)
	assert.Equal(t, runResult{0, "34\n", ""}, runResult{code, stdout.String(), stderr.String()})

	stdout.Reset()
	stderr.Reset()
	code = run(context.Background(), []string{"-watch", "-"}, strings.NewReader("1"), &stdout, &stderr)
	assert.Equal(t, runResult{1, "", "ERROR: cannot watch standard input\n"}, runResult{code, stdout.String(), stderr.String()})
}
