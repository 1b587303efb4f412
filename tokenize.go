package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer turns source text into a tape of Values.
//
// Tokens are tried in a fixed order, first match wins:
//   - number literals: [+-]?[0-9]+(\.[0-9]+)?, so "3+11" is 3 then +11
//   - boolean literals: #t and #f, which are the Numbers 1 and 0
//   - compressed string literals, between backticks, decoded by the codec
//   - plain string literals, between double quotes, with no escapes
//   - the operator characters + - * / = ! ^ % , .
//   - words, maximal runs of letters: the operations n and R, then
//     case-insensitive keywords like cmp or jmp, and finally Roman numerals;
//     a word that is none of these is a Roman numeral worth 0
//
// Whitespace may separate any two tokens, but is never required.
type Tokenizer struct {
	config
}

// NewTokenizer creates a Tokenizer; only the codec and logging options apply.
func NewTokenizer(opts ...Option) *Tokenizer {
	var tz Tokenizer
	tz.apply(opts...)
	return &tz
}

// Tokenize is shorthand for NewTokenizer(opts...).Tokenize(src).
func Tokenize(src string, opts ...Option) ([]Value, error) {
	return NewTokenizer(opts...).Tokenize(src)
}

// Tokenize converts all of src into a tape. Any error aborts tokenization:
// no partial tape is returned.
func (tz *Tokenizer) Tokenize(src string) ([]Value, error) {
	sc := scanner{src: src}
	var prog []Value
	for {
		sc.skipSpace()
		if sc.done() {
			return prog, nil
		}
		at := sc.pos
		val, err := tz.scanToken(&sc)
		if err != nil {
			tz.logf("!", "tokenize @%v error: %v", at, err)
			return nil, err
		}
		tz.logf(">", "token @%v %v", at, val)
		prog = append(prog, val)
	}
}

var (
	errUnterminated = errors.New("missing closing delimiter")
	errOutOfRange   = errors.New("number out of range")
)

func (tz *Tokenizer) scanToken(sc *scanner) (Value, error) {
	start := sc.pos

	if lit := sc.number(); lit != "" {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return Value{}, ParseError{start, fmt.Sprintf("malformed number %q", lit), errOutOfRange}
		}
		return Number(f), nil
	}

	switch {
	case sc.literal("#t"):
		return Bool(true), nil
	case sc.literal("#f"):
		return Bool(false), nil
	}

	c := sc.src[sc.pos]
	switch {
	case c == '`':
		payload, ok := sc.delimited('`')
		if !ok {
			return Value{}, ParseError{start, "unterminated compressed string", errUnterminated}
		}
		b, err := tz.codec.Decompress([]byte(payload))
		if err != nil {
			return Value{}, ParseError{start, "undecodable compressed string", DecodeError{OpDecompress, err}}
		}
		return Text(string(b)), nil

	case c == '"':
		s, ok := sc.delimited('"')
		if !ok {
			return Value{}, ParseError{start, "unterminated string", errUnterminated}
		}
		return Text(s), nil
	}

	if op, ok := symbolOps[c]; ok {
		sc.pos++
		return Operation(op), nil
	}

	if word := sc.word(); word != "" {
		return resolveWord(word), nil
	}

	r, _ := utf8.DecodeRuneInString(sc.src[sc.pos:])
	return Value{}, ParseError{start, fmt.Sprintf("unexpected character %q", r), nil}
}

// resolveWord maps a word to its operation, or failing that to its Roman
// numeral value.
func resolveWord(word string) Value {
	if op, ok := wordOps[word]; ok {
		return Operation(op)
	}
	if len(word) > 1 {
		if op, ok := keywordOps[strings.ToLower(word)]; ok {
			return Operation(op)
		}
	}
	return Number(float64(fromRoman(word)))
}

type scanner struct {
	src string
	pos int
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.src) }

func (sc *scanner) skipSpace() {
	for !sc.done() {
		r, n := utf8.DecodeRuneInString(sc.src[sc.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		sc.pos += n
	}
}

// literal consumes s if the remaining source starts with it.
func (sc *scanner) literal(s string) bool {
	if strings.HasPrefix(sc.src[sc.pos:], s) {
		sc.pos += len(s)
		return true
	}
	return false
}

// number consumes and returns a number literal, or returns "" leaving the
// position unchanged.
func (sc *scanner) number() string {
	i := sc.pos
	if i < len(sc.src) && (sc.src[i] == '-' || sc.src[i] == '+') {
		i++
	}
	j := sc.digits(i)
	if j == i {
		return ""
	}
	if j < len(sc.src) && sc.src[j] == '.' {
		if k := sc.digits(j + 1); k > j+1 {
			j = k
		}
	}
	lit := sc.src[sc.pos:j]
	sc.pos = j
	return lit
}

func (sc *scanner) digits(i int) int {
	for i < len(sc.src) && '0' <= sc.src[i] && sc.src[i] <= '9' {
		i++
	}
	return i
}

// delimited consumes a string that starts with delim and ends with the next
// delim, returning the text between them. When there is no closing delim it
// returns false and leaves the position unchanged.
func (sc *scanner) delimited(delim byte) (string, bool) {
	body := sc.src[sc.pos+1:]
	end := strings.IndexByte(body, delim)
	if end < 0 {
		return "", false
	}
	sc.pos += end + 2
	return body[:end], true
}

// word consumes and returns a maximal run of letters.
func (sc *scanner) word() string {
	i := sc.pos
	for i < len(sc.src) {
		r, n := utf8.DecodeRuneInString(sc.src[i:])
		if !unicode.IsLetter(r) {
			break
		}
		i += n
	}
	w := sc.src[sc.pos:i]
	sc.pos = i
	return w
}
