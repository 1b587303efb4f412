package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"

	"github.com/jcorbin/putt/internal/source"
)

const replHelp = `Enter a program to run it; its result is the top of the stack.
Commands:
  :help       show this message
  :stack      show the stack (persist mode)
  :dump       dump the VM state (persist mode)
  :persist    toggle keeping the stack between lines
  :reset      discard the kept stack
  exit, quit  leave the REPL (or Ctrl+D)`

// repl reads lines with editing and history, evaluating each in turn; errors
// are reported and the loop carries on.
func (s *session) repl(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeWord)

	if s.cfg.History != "" {
		if f, err := os.Open(s.cfg.History); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(s.cfg.History); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Fprintf(s.out, "PUTT REPL v%v\n", version)
	for ctx.Err() == nil {
		input, err := line.Prompt(s.cfg.Prompt)
		switch {
		case err == liner.ErrPromptAborted:
			fmt.Fprintln(s.out, "^C")
			continue
		case err == io.EOF:
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case trimmed == "exit" || trimmed == "quit":
			return nil
		case strings.HasPrefix(trimmed, ":"):
			s.command(trimmed)
		default:
			s.evalLine(ctx, input)
		}
	}
	return nil
}

// evalLine runs one line of input; an interrupt cancels that line only.
func (s *session) evalLine(ctx context.Context, input string) {
	ctx, stop := s.interrupt(ctx)
	defer stop()
	file := source.New("<repl>", input)
	if err := s.eval(ctx, file); err != nil {
		s.log.Printf("ERROR", "%v", err)
		s.showErrorAt(file, err)
	}
}

func (s *session) command(cmd string) {
	switch strings.Fields(cmd)[0] {
	case ":help":
		fmt.Fprintln(s.out, replHelp)

	case ":stack":
		if s.vm == nil {
			fmt.Fprintln(s.out, "[]")
			return
		}
		for i, val := range s.vm.Stack() {
			fmt.Fprintf(s.out, "%v: %v\n", i, val)
		}

	case ":dump":
		if s.vm == nil {
			fmt.Fprintln(s.out, "no kept VM; try :persist")
			return
		}
		s.vm.Dump(s.out)

	case ":persist":
		s.cfg.Persist = !s.cfg.Persist
		if !s.cfg.Persist {
			s.vm = nil
		}
		fmt.Fprintf(s.out, "persist: %v\n", s.cfg.Persist)

	case ":reset":
		s.vm = nil
		fmt.Fprintln(s.out, "reset")

	default:
		fmt.Fprintf(s.out, "unknown command %q, try :help\n", cmd)
	}
}

var keywordNames = func() []string {
	names := make([]string, 0, len(keywordOps))
	for name := range keywordOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// completeWord completes a trailing partial keyword.
func completeWord(line string) (completions []string) {
	start := 0
	if i := strings.LastIndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
		_, n := utf8.DecodeRuneInString(line[i:])
		start = i + n
	}
	head, partial := line[:start], strings.ToLower(line[start:])
	if partial == "" {
		return nil
	}
	for _, name := range keywordNames {
		if strings.HasPrefix(name, partial) {
			completions = append(completions, head+name)
		}
	}
	return completions
}
