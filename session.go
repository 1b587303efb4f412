package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jcorbin/putt/internal/logio"
	"github.com/jcorbin/putt/internal/panicerr"
	"github.com/jcorbin/putt/internal/source"
)

// session evaluates whole programs for the command line host: tokenize, run,
// then print the top of the stack as the result.
type session struct {
	cfg  Config
	opts []Option
	tz   *Tokenizer
	in   io.Reader
	out  io.Writer
	log  *logio.Logger

	dump    bool
	timeout time.Duration

	interrupt func(ctx context.Context) (context.Context, context.CancelFunc)

	vm *VM // kept between evaluations in persist mode
}

func newSession(cfg Config, out io.Writer, log *logio.Logger) (*session, error) {
	opt, err := cfg.options(log)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithOutput(out), opt}
	return &session{
		cfg:  cfg,
		opts: opts,
		tz:   NewTokenizer(opts...),
		out:  out,
		log:  log,

		interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}, nil
}

func (s *session) engine() *VM {
	if !s.cfg.Persist {
		return New(s.opts...)
	}
	if s.vm == nil {
		s.vm = New(s.opts...)
	}
	return s.vm
}

// runFile runs the named file, or standard input when path is "-".
func (s *session) runFile(ctx context.Context, path string) error {
	var (
		file *source.File
		err  error
	)
	if path == "-" && s.in != nil {
		file, err = source.Read(s.in)
	} else {
		file, err = source.Open(path)
	}
	if err != nil {
		return err
	}
	return s.eval(ctx, file)
}

func (s *session) eval(ctx context.Context, file *source.File) error {
	prog, err := s.tz.Tokenize(file.Text)
	if err != nil {
		var perr ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%v: %w", file.Location(perr.Pos), err)
		}
		return err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vm := s.engine()
	vm.Load(prog...)
	if err := vm.Run(ctx); err != nil {
		if panicerr.IsPanic(err) {
			s.log.Printf("PANIC", "%s", panicerr.PanicStack(err))
		}
		if s.dump {
			lw := logio.Writer{Logf: s.log.Leveledf("DUMP")}
			vm.Dump(&lw)
			lw.Close()
		}
		vm.SkipRest()
		return err
	}

	if vm.Printed() {
		return nil
	}
	return s.printResult(vm)
}

// printResult writes the top of the stack, or [] when it is empty, to the
// VM's output.
func (s *session) printResult(vm *VM) error {
	res := "[]"
	if top, ok := vm.Top(); ok {
		res = top.Render()
	}
	if _, err := io.WriteString(vm.out, res+"\n"); err != nil {
		return err
	}
	return vm.out.Flush()
}

// showErrorAt writes the source line of a parse error with a caret under the
// offending column; other errors are ignored.
func (s *session) showErrorAt(file *source.File, err error) {
	var perr ParseError
	if !errors.As(err, &perr) {
		return
	}
	loc := file.Location(perr.Pos)
	fmt.Fprintf(s.out, "%s\n%*s^\n", file.Line(loc.Line), loc.Column-1, "")
}
