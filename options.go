package main

import (
	"io"

	"github.com/jcorbin/putt/internal/codec"
	"github.com/jcorbin/putt/internal/flushio"
)

// Option configures a VM or Tokenizer.
type Option interface{ apply(cfg *config) }

const defaultRangeLimit = 1 << 20

var defaults = []Option{
	withOutput(io.Discard),
	withRangeLimit(defaultRangeLimit),
}

func (cfg *config) apply(opts ...Option) {
	for _, opt := range defaults {
		opt.apply(cfg)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
	if cfg.codec == nil {
		cfg.codec = codec.Default()
	}
}

// Options combines any number of options into one.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type options []Option

func (opts options) apply(cfg *config) {
	for _, opt := range opts {
		opt.apply(cfg)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(cfg *config) {
	cfg.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type codecOption struct{ codec.Codec }
type stepLimitOption int
type rangeLimitOption int

func withOutput(w io.Writer) outputOption       { return outputOption{w} }
func withTee(w io.Writer) teeOption             { return teeOption{w} }
func withCodec(c codec.Codec) codecOption       { return codecOption{c} }
func withStepLimit(limit int) stepLimitOption   { return stepLimitOption(limit) }
func withRangeLimit(limit int) rangeLimitOption { return rangeLimitOption(limit) }

func (o outputOption) apply(cfg *config) {
	if cfg.out != nil {
		cfg.out.Flush()
	}
	cfg.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(cfg *config) {
	cfg.out = flushio.WriteFlushers(cfg.out, flushio.NewWriteFlusher(o.Writer))
}

func (o codecOption) apply(cfg *config) {
	cfg.codec = o.Codec
}

func (lim stepLimitOption) apply(cfg *config) {
	cfg.stepLimit = int(lim)
}

func (lim rangeLimitOption) apply(cfg *config) {
	if lim <= 0 {
		lim = defaultRangeLimit
	}
	cfg.rangeLimit = int(lim)
}
