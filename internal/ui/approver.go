package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

var (
	_ dlmeta.Approver = (*PromptApprover)(nil)
	_ dlmeta.Approver = AutoApprover{}
	_ dlmeta.Approver = RefuseApprover{}
)

// PromptApprover asks on out and reads the answer from in.
// Only "y" or "yes" (any case) approves.
type PromptApprover struct {
	in  io.Reader
	out io.Writer
}

// NewPromptApprover creates a PromptApprover.
func NewPromptApprover(in io.Reader, out io.Writer) *PromptApprover {
	return &PromptApprover{in: in, out: out}
}

// RequestApproval implements dlmeta.Approver.
func (a *PromptApprover) RequestApproval(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)

	answers := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && line == "" {
			errs <- err
			return
		}
		answers <- strings.ToLower(strings.TrimSpace(line))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errs:
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	case answer := <-answers:
		return answer == "y" || answer == "yes", nil
	}
}

// AutoApprover approves everything; used with --yes.
type AutoApprover struct{}

// RequestApproval implements dlmeta.Approver.
func (AutoApprover) RequestApproval(context.Context, string) (bool, error) { return true, nil }

// RefuseApprover declines everything; used when no one can be asked.
type RefuseApprover struct{}

// RequestApproval implements dlmeta.Approver.
func (RefuseApprover) RequestApproval(context.Context, string) (bool, error) { return false, nil }

// ApproverFor picks the approver for a command: AutoApprover when yes is set,
// a prompt in interactive mode and RefuseApprover otherwise.
func ApproverFor(yes bool, in io.Reader, out io.Writer) dlmeta.Approver {
	switch {
	case yes:
		return AutoApprover{}
	case DetectMode(in, out) == ModeInteractive:
		return NewPromptApprover(in, out)
	default:
		return RefuseApprover{}
	}
}
