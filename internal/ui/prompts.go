package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for values.
type Prompter interface {
	AskText(prompt, def string) (string, error)
	AskInt(prompt string, def int) (int, error)
	AskConfirm(prompt string, defaultYes bool) (bool, error)
	AskSelect(prompt string, choices []string) (int, string, error)
}

// TerminalPrompter prompts on a terminal through promptui.
type TerminalPrompter struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewPrompter creates a prompter. Nil streams mean the process terminal.
func NewPrompter(stdin io.ReadCloser, stdout io.WriteCloser) *TerminalPrompter {
	return &TerminalPrompter{stdin: stdin, stdout: stdout}
}

// AskText prompts for free text, returning def on empty input.
func (p *TerminalPrompter) AskText(prompt, def string) (string, error) {
	pr := promptui.Prompt{
		Label:   prompt,
		Default: def,
		Stdin:   p.stdin,
		Stdout:  p.stdout,
	}
	v, err := pr.Run()
	if err != nil {
		return "", mapErr(err)
	}
	return strings.TrimSpace(v), nil
}

// AskInt prompts for a non-negative integer.
func (p *TerminalPrompter) AskInt(prompt string, def int) (int, error) {
	pr := promptui.Prompt{
		Label:   prompt,
		Default: strconv.Itoa(def),
		Stdin:   p.stdin,
		Stdout:  p.stdout,
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 0 {
				return fmt.Errorf("enter a whole number >= 0")
			}
			return nil
		},
	}
	v, err := pr.Run()
	if err != nil {
		return 0, mapErr(err)
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

// AskConfirm prompts for yes/no.
func (p *TerminalPrompter) AskConfirm(prompt string, defaultYes bool) (bool, error) {
	def := "n"
	if defaultYes {
		def = "y"
	}
	pr := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
		Default:   def,
		Stdin:     p.stdin,
		Stdout:    p.stdout,
	}
	_, err := pr.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, ErrCancelled
		}
		return false, err
	}
	return true, nil
}

// AskSelect prompts for one of choices.
func (p *TerminalPrompter) AskSelect(prompt string, choices []string) (int, string, error) {
	sel := promptui.Select{
		Label:  prompt,
		Items:  choices,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	i, v, err := sel.Run()
	if err != nil {
		return -1, "", mapErr(err)
	}
	return i, v, nil
}

func mapErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCancelled
	}
	return err
}
