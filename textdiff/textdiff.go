// Package textdiff produces line-oriented diffs of serialized documents.
// It compares rendered text rather than trees, so two structurally equal
// trees with different formatting still show their textual drift.
package textdiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/encode"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of diff output, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

// Strings diffs from and to line by line.
func Strings(from, to string) []Line {
	diffCfg := diffpatch.New()
	fromChars, toChars, arr := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(fromChars, toChars, false)
	diffs = diffCfg.DiffCharsToLines(diffs, arr)

	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Trees diffs the serializations of two trees under the given encoding
// options.
func Trees(from, to *doc.Tree, opts ...encode.EncodeOption) ([]Line, error) {
	fromBuf, toBuf := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	if err := encode.EncodeTree(from, fromBuf, opts...); err != nil {
		return nil, err
	}
	if err := encode.EncodeTree(to, toBuf, opts...); err != nil {
		return nil, err
	}
	return Strings(fromBuf.String(), toBuf.String()), nil
}

// Changed reports whether lines contain any insert or delete.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

var (
	insColor = color.New(color.FgGreen)
	delColor = color.New(color.FgRed)
)

// Render writes lines in "+/-/ " prefixed form. With colored set,
// inserts come out green and deletes red.
func Render(w io.Writer, lines []Line, colored bool) error {
	for _, ln := range lines {
		s := " " + ln.Text
		switch ln.Op {
		case Insert:
			s = "+" + ln.Text
			if colored {
				s = insColor.Sprint(s)
			}
		case Delete:
			s = "-" + ln.Text
			if colored {
				s = delColor.Sprint(s)
			}
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
