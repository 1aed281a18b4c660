// Package prompt reads line-oriented answers from a terminal, re-asking until
// an answer parses.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter writes questions to out and reads one answer line per question
// from in. Once in is exhausted every read returns io.EOF.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Say writes one line of output.
func (p *Prompter) Say(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Line prints question (if any) and returns the next input line without its
// line terminator. Lines have no length limit. A last line without a
// terminator is returned before io.EOF.
func (p *Prompter) Line(question string) (string, error) {
	if question != "" {
		p.Say(question)
	}
	if p.eof {
		return "", io.EOF
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		p.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Ask repeats question until parse accepts the answer. After each rejected
// answer invalid is printed, unless it is empty. Only input errors (io.EOF
// included) end the loop early.
func Ask[T any](p *Prompter, question, invalid string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := p.Line(question)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		if invalid != "" {
			p.Say(invalid)
		}
	}
}

// Lines prints question and collects trimmed lines until a blank one. End
// of input also ends the list.
func (p *Prompter) Lines(question string) ([]string, error) {
	p.Say(question)
	var lines []string
	for {
		line, err := p.Line("")
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}
