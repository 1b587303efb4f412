package panicerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	errBoom := errors.New("boom")

	for _, tc := range []struct {
		name      string
		err       string
		wraps     error
		fun       func() error
		haveStack bool
	}{
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name:  "halt",
			err:   "boom",
			wraps: errBoom,
			fun:   func() error { panic(Halt{errBoom}) },
		},
		{
			name:      "panic err",
			err:       "panic err paniced: boom",
			wraps:     errBoom,
			haveStack: true,
			fun:       func() error { panic(errBoom) },
		},
		{
			name:      "hello panic",
			err:       "hello panic paniced: hello",
			haveStack: true,
			fun:       func() error { panic("hello") },
		},
		{
			name: "exit",
			err:  "exit called runtime.Goexit",
			fun:  func() error { runtime.Goexit(); return nil },
		},
		{
			name:      "index panic",
			err:       "index panic paniced: runtime error: index out of range [1] with length 0",
			haveStack: true,
			fun:       func() error { _ = ([]int)(nil)[1]; return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
			if tc.wraps != nil {
				assert.True(t, errors.Is(err, tc.wraps), "expected wrapped error")
			}
			assert.Equal(t, tc.haveStack, IsPanic(err), "expected IsPanic")
			stack := PanicStack(err)
			if tc.haveStack {
				assert.NotEqual(t, "", stack, "expected a stack trace")
			} else {
				assert.Equal(t, "", stack, "expected no stack trace")
			}
		})
	}
}

func TestRecover_stacktrace(t *testing.T) {
	err := Recover("", func() error {
		panic("nope")
	})
	require.Error(t, err, "must have a recovered error")

	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), PanicStack(err)),
		"expected verbose format to end with a stack trace")
}

func TestHalt_Error(t *testing.T) {
	assert.EqualError(t, Halt{}, "halted")
	assert.EqualError(t, Halt{errors.New("nope")}, "halted: nope")
}
