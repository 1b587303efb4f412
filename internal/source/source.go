// Package source names program text and maps byte offsets within it back to
// line and column locations for user feedback.
package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"
)

// Location names a line and column in a File.
type Location struct {
	Name   string
	Line   int
	Column int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column) }

// File is a named body of program text.
type File struct {
	Name string
	Text string

	lines []int // byte offset of each line start
}

// New creates a File from already loaded text.
func New(name, text string) *File {
	f := &File{Name: name, Text: text}
	f.lines = append(f.lines, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// Open reads the named file in full.
func Open(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, string(b)), nil
}

// Read reads all of r; the File takes the reader's name, if it has one.
func Read(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(nameOf(r), string(b)), nil
}

// Location returns the 1-based line and column of the given byte offset;
// columns count runes. Offsets are clamped into the text.
func (f *File) Location(offset int) Location {
	if offset < 0 {
		offset = 0
	} else if offset > len(f.Text) {
		offset = len(f.Text)
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	start := f.lines[i]
	return Location{
		Name:   f.Name,
		Line:   i + 1,
		Column: utf8.RuneCountInString(f.Text[start:offset]) + 1,
	}
}

// Line returns the text of the given 1-based line, without its line feed.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start, end := f.lines[n-1], len(f.Text)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	return f.Text[start:end]
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
