// Package format compiles subreddit_format templates such as
// "%t\n<%i|%s%v|%cC> %r%e %a %S %F" into directives and evaluates them
// against submissions.
package format

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind identifies what a directive draws.
type Kind int

const (
	Literal Kind = iota
	Newline
	Separator

	Index        // %i
	Title        // %t
	Score        // %s
	Vote         // %v
	Comments     // %c
	Created      // %r
	CreatedExact // %R
	Edited       // %e
	EditedExact  // %E
	Author       // %a
	Subreddit    // %S
	URL          // %u
	URLFull      // %U
	Saved        // %A
	Hidden       // %h
	Stickied     // %T
	Gold         // %g
	NSFW         // %n
	Flair        // %f
	AllFlair     // %F
)

var specifiers = map[string]Kind{
	"%i": Index,
	"%t": Title,
	"%s": Score,
	"%v": Vote,
	"%c": Comments,
	"%r": Created,
	"%R": CreatedExact,
	"%e": Edited,
	"%E": EditedExact,
	"%a": Author,
	"%S": Subreddit,
	"%u": URL,
	"%U": URLFull,
	"%A": Saved,
	"%h": Hidden,
	"%T": Stickied,
	"%g": Gold,
	"%n": NSFW,
	"%f": Flair,
	"%F": AllFlair,
}

// reserved specifiers fail to compile with a *NotImplementedError. %L is a
// placeholder with no planned meaning; %R, %E and %u are implemented.
var reserved = map[string]bool{
	"%L": true,
}

var splitter = regexp.MustCompile(`%.|[\n<>|\\]`)

// ErrNotImplemented matches every *NotImplementedError.
var ErrNotImplemented = errors.New("format specifier not implemented")

// NotImplementedError reports a reserved specifier in a template.
type NotImplementedError struct {
	Specifier string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("'%s' subreddit_format specifier not yet supported", e.Specifier)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// Directive is one compiled piece of a template.
type Directive struct {
	Kind Kind
	Text string // literal and separator text

	// LineStart marks the first piece of a visual row; it is drawn at the
	// row's first column instead of after the previous piece.
	LineStart bool
}

// Compile splits template into directives. Every piece between specifiers,
// newlines and separators is kept, including empty ones, so the line start
// flag always lands on the piece right after a newline.
func Compile(template string) ([]Directive, error) {
	if template == "" {
		return nil, nil
	}

	var pieces []string
	prev := 0
	for _, loc := range splitter.FindAllStringIndex(template, -1) {
		pieces = append(pieces, template[prev:loc[0]], template[loc[0]:loc[1]])
		prev = loc[1]
	}
	pieces = append(pieces, template[prev:])

	directives := make([]Directive, 0, len(pieces))
	first := true
	for _, piece := range pieces {
		d := Directive{Kind: Literal, Text: piece, LineStart: first}
		switch {
		case piece == "\n":
			d.Kind = Newline
			directives = append(directives, d)
			first = true
			continue
		case piece == "<" || piece == ">" || piece == "|" || piece == `\`:
			d.Kind = Separator
		case reserved[piece]:
			return nil, &NotImplementedError{Specifier: piece}
		default:
			if kind, ok := specifiers[piece]; ok {
				d.Kind = kind
				d.Text = ""
			}
		}
		directives = append(directives, d)
		first = false
	}
	return directives, nil
}

// Lines returns the number of visual rows the directives occupy.
func Lines(directives []Directive) int {
	if len(directives) == 0 {
		return 0
	}
	n := 1
	for _, d := range directives {
		if d.Kind == Newline {
			n++
		}
	}
	return n
}
