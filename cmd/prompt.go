package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive answers from the user. The terminal
// implementation talks to stdin; tests substitute a scripted one. Both calls
// return the context's error as soon as it is cancelled, so an interrupt
// aborts a pending prompt instead of blocking until enter/EOF.
type Prompter interface {
	// Input asks a question and returns the entered line.
	Input(ctx context.Context, prompt string) (string, error)
	// Secret asks a question without echoing the answer.
	Secret(ctx context.Context, prompt string) (string, error)
}

// TerminalPrompter reads from standard input, masking secrets via the
// terminal's no-echo mode.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter returns a Prompter on stdin/stderr. Prompts go to
// stderr so piping stdout only captures the reply.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

type promptResult struct {
	value string
	err   error
}

// await runs read in a goroutine and races it against ctx. On cancellation
// the blocked read goroutine is abandoned; the process is about to exit.
func (p *TerminalPrompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	done := make(chan promptResult, 1)
	go func() {
		value, err := read()
		done <- promptResult{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

// Input implements Prompter.Input.
func (p *TerminalPrompter) Input(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)
	return p.await(ctx, func() (string, error) {
		line, err := p.in.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	})
}

// Secret implements Prompter.Secret. The terminal state is captured first so
// a cancelled read can restore echo before the process exits.
func (p *TerminalPrompter) Secret(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)

	fd := int(os.Stdin.Fd())
	state, stateErr := term.GetState(fd)

	value, err := p.await(ctx, func() (string, error) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	})
	if err != nil && ctx.Err() != nil && stateErr == nil {
		_ = term.Restore(fd, state)
	}
	return value, err
}

// ScriptedPrompter replays canned answers in order. Used by tests and by any
// headless caller that needs to drive prompts without a terminal.
type ScriptedPrompter struct {
	Answers []string
	next    int
}

// Input implements Prompter.Input.
func (p *ScriptedPrompter) Input(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.next >= len(p.Answers) {
		return "", io.EOF
	}
	answer := p.Answers[p.next]
	p.next++
	return answer, nil
}

// Secret implements Prompter.Secret.
func (p *ScriptedPrompter) Secret(ctx context.Context, prompt string) (string, error) {
	return p.Input(ctx, prompt)
}
