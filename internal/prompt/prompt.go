// Package prompt asks the user for record fields one line at a time.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// DateLayout is the format accepted by Date.
const DateLayout = "2006-01-02"

// ErrAborted is returned when the user interrupts a prompt or input ends.
var ErrAborted = errors.New("prompt aborted")

// LineReader is the part of *readline.Instance the prompter needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Prompter reads answers from a LineReader and writes hints to out.
type Prompter struct {
	rl  LineReader
	out io.Writer
}

// New opens a readline session on the terminal.
func New() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Prompter{rl: rl, out: rl.Stdout()}, nil
}

// NewWithReader builds a prompter over any line source.
func NewWithReader(rl LineReader, out io.Writer) *Prompter {
	return &Prompter{rl: rl, out: out}
}

// Close releases the terminal.
func (p *Prompter) Close() error {
	return p.rl.Close()
}

func (p *Prompter) ask(label string) (string, error) {
	cyan := color.New(color.FgCyan).SprintFunc()
	p.rl.SetPrompt(fmt.Sprintf("%s %s: ", cyan("?"), label))
	line, err := p.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

//nolint:errcheck // hints go to the terminal
func (p *Prompter) hint(format string, args ...interface{}) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(p.out, "  %s\n", yellow(fmt.Sprintf(format, args...)))
}

// Input asks for free text. An empty answer yields def.
func (p *Prompter) Input(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s (%s)", label, def)
	}
	answer, err := p.ask(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Required asks until a non-empty answer is given.
func (p *Prompter) Required(label string) (string, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.hint("%s is required", label)
	}
}

// Select shows numbered options and returns the index of the chosen one.
// An empty answer picks def.
//
//nolint:errcheck // option list goes to the terminal
func (p *Prompter) Select(label string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options to choose from for %s", label)
	}
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	for {
		answer, err := p.ask(fmt.Sprintf("%s [%d]", label, def+1))
		if err != nil {
			return -1, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.hint("enter a number between 1 and %d", len(options))
	}
}

// MultiSelect shows numbered options and returns the indexes picked as a comma list.
// An empty answer picks nothing.
//
//nolint:errcheck // option list goes to the terminal
func (p *Prompter) MultiSelect(label string, options []string) ([]int, error) {
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	for {
		answer, err := p.ask(label + " (comma-separated numbers)")
		if err != nil {
			return nil, err
		}
		picked, ok := parseIndexes(answer, len(options))
		if ok {
			return picked, nil
		}
		p.hint("enter numbers between 1 and %d separated by commas", len(options))
	}
}

func parseIndexes(answer string, count int) ([]int, bool) {
	picked := []int{}
	seen := map[int]bool{}
	for _, part := range SplitList(answer) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > count {
			return nil, false
		}
		if !seen[n] {
			seen[n] = true
			picked = append(picked, n-1)
		}
	}
	return picked, true
}

// Confirm asks a yes/no question. An empty answer yields def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	choices := "y/N"
	if def {
		choices = "Y/n"
	}
	for {
		answer, err := p.ask(fmt.Sprintf("%s (%s)", label, choices))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.hint("answer y or n")
	}
}

// Int asks for an optional whole number within [lo, hi]. An empty answer yields nil.
func (p *Prompter) Int(label string, lo, hi int) (*int, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= lo && n <= hi {
			return &n, nil
		}
		p.hint("enter a whole number between %d and %d", lo, hi)
	}
}

// Float asks for an optional number. An empty answer yields nil.
func (p *Prompter) Float(label string) (*float64, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(answer, ",", ""), 64)
		if err == nil {
			return &f, nil
		}
		p.hint("enter a number")
	}
}

// List asks for a comma-separated list.
func (p *Prompter) List(label string) ([]string, error) {
	answer, err := p.ask(label + " (comma-separated)")
	if err != nil {
		return nil, err
	}
	return SplitList(answer), nil
}

// Date asks for an optional YYYY-MM-DD date, read as midnight UTC. An empty answer yields nil.
func (p *Prompter) Date(label string) (*time.Time, error) {
	for {
		answer, err := p.ask(label + " (YYYY-MM-DD)")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		d, err := time.ParseInLocation(DateLayout, answer, time.UTC)
		if err == nil {
			return &d, nil
		}
		p.hint("enter a date like 2025-06-30")
	}
}

// SplitList splits a comma-separated answer, dropping blank entries.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
