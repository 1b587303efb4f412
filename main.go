package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jcorbin/putt/internal/logio"
	"github.com/jcorbin/putt/internal/source"
)

const version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var log logio.Logger
	log.SetOutput(stderr)

	flags := flag.NewFlagSet("putt", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		flags.Output().Write([]byte("usage: putt [flags] [FILE | -]\n"))
		flags.PrintDefaults()
	}

	var (
		configPath string
		eval       string
		teePath    string
		codecName  string
		trace      bool
		dump       bool
		watch      bool
		persist    bool
		timeout    time.Duration
		maxSteps   int
		maxRange   int
	)
	flags.StringVar(&configPath, "config", "", "read settings from a YAML file")
	flags.StringVar(&eval, "e", "", "evaluate a program given as an argument")
	flags.StringVar(&teePath, "tee", "", "also write program output to a file")
	flags.StringVar(&codecName, "codec", "", "compression codec for cmp, dmp, and compressed literals")
	flags.BoolVar(&trace, "trace", false, "enable trace logging")
	flags.BoolVar(&dump, "dump", false, "dump the VM state after a failed run")
	flags.BoolVar(&watch, "watch", false, "run FILE again every time it changes")
	flags.BoolVar(&persist, "persist", false, "keep the stack between REPL lines")
	flags.DurationVar(&timeout, "timeout", 0, "specify a time limit for each run")
	flags.IntVar(&maxSteps, "max-steps", 0, "limit the number of tokens dispatched by each run")
	flags.IntVar(&maxRange, "max-range", 0, "limit the length of lists built by range")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Errorf("%v", err)
		return log.ExitCode()
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "codec":
			cfg.Codec = codecName
		case "trace":
			cfg.Trace = trace
		case "persist":
			cfg.Persist = persist
		case "max-steps":
			cfg.MaxSteps = maxSteps
		case "max-range":
			cfg.MaxRange = maxRange
		}
	})

	s, err := newSession(cfg, stdout, &log)
	if err != nil {
		log.Errorf("%v", err)
		return log.ExitCode()
	}
	s.in = stdin
	s.dump = dump
	s.timeout = timeout

	if teePath != "" {
		f, err := os.Create(teePath)
		if err != nil {
			log.Errorf("%v", err)
			return log.ExitCode()
		}
		defer f.Close()
		s.opts = append(s.opts, WithTee(f))
	}

	// the REPL handles interrupts itself, one line at a time
	if eval != "" || flags.NArg() > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	switch {
	case eval != "":
		log.ErrorIf(s.eval(ctx, source.New("<eval>", eval)))
	case flags.NArg() > 0 && watch:
		log.ErrorIf(s.watch(ctx, flags.Arg(0)))
	case flags.NArg() > 0:
		log.ErrorIf(s.runFile(ctx, flags.Arg(0)))
	default:
		log.ErrorIf(s.repl(ctx))
	}
	return log.ExitCode()
}
