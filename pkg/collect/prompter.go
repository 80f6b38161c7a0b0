// Package collect gathers a profile and a job posting from an interactive
// terminal session.
package collect

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrInputCancelled is returned when the user ends input or declines to
// continue. Callers treat it as a clean exit.
var ErrInputCancelled = errors.New("input cancelled")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) (p *Prompter) {
	p = &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	return p
}

// readLine returns the next line without its terminator. End of input with
// nothing read is a cancellation.
func (p *Prompter) readLine() (line string, err error) {
	line, err = p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				err = ErrInputCancelled
				return line, err
			}
			err = nil
		} else {
			err = errors.Wrap(err, "failed to read input")
			return line, err
		}
	}

	line = strings.TrimRight(line, "\r\n")
	return line, err
}

// Ask prints label and returns the trimmed answer, or def when the answer is
// blank.
func (p *Prompter) Ask(label, def string) (answer string, err error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, err = p.readLine()
	if err != nil {
		return answer, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = def
	}

	return answer, err
}

// Confirm asks a yes/no question. A blank answer selects def; anything other
// than yes or no asks again.
func (p *Prompter) Confirm(question string, def bool) (yes bool, err error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", question, hint)

		var answer string
		answer, err = p.readLine()
		if err != nil {
			return yes, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			yes = def
			return yes, err
		case "y", "yes":
			yes = true
			return yes, err
		case "n", "no":
			yes = false
			return yes, err
		}

		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// List reads numbered items until a blank answer.
func (p *Prompter) List(item string) (items []string, err error) {
	items = []string{}
	for {
		var answer string
		answer, err = p.Ask(fmt.Sprintf("  %s #%d", item, len(items)+1), "")
		if err != nil {
			return items, err
		}
		if answer == "" {
			return items, err
		}
		items = append(items, answer)
	}
}

// Posting reads a pasted job posting. Input ends after two consecutive blank
// lines or at end of input. Nothing pasted is a cancellation.
func (p *Prompter) Posting() (posting string, err error) {
	fmt.Fprintln(p.out, "Paste the job posting below.")
	fmt.Fprintln(p.out, "When finished, press Enter on an empty line twice.")
	fmt.Fprintln(p.out)

	var lines []string
	blank := 0
	for {
		var line string
		line, err = p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			err = errors.Wrap(err, "failed to read job posting")
			return posting, err
		}
		eof := err != nil
		err = nil

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			blank++
		} else {
			blank = 0
		}
		lines = append(lines, line)

		if eof || blank >= 2 {
			break
		}
	}

	posting = strings.TrimSpace(strings.Join(lines, "\n"))
	if posting == "" {
		err = ErrInputCancelled
		return posting, err
	}

	fmt.Fprintf(p.out, "\n✓ Job posting received (%d characters)\n", len(posting))
	return posting, err
}
