package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/term"
)

// Terminal asks for confirmation on an interactive terminal
type Terminal struct {
	in  io.Reader
	out io.Writer
}

var _ interfaces.Confirmer = (*Terminal)(nil)

// NewTerminal creates a Terminal reading answers from in and writing prompts to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Confirm writes prompt and reads one line. The answer is accepted if it
// matches any of accepted, ignoring case and surrounding spaces. An empty
// input stream counts as a refusal.
func (t *Terminal) Confirm(ctx context.Context, prompt string, accepted ...string) (bool, error) {
	if f, ok := t.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, goerr.Wrap(model.ErrAborted, "confirmation requires an interactive terminal, use --yes to skip it")
	}

	if _, err := fmt.Fprint(t.out, prompt); err != nil {
		return false, goerr.Wrap(err, "failed to write prompt")
	}

	answer, err := readLine(ctx, t.in)
	if err != nil {
		return false, err
	}

	for _, a := range accepted {
		if strings.EqualFold(answer, a) {
			return true, nil
		}
	}

	ctxlog.From(ctx).Debug("Confirmation declined", "answer", answer)
	return false, nil
}

func readLine(ctx context.Context, r io.Reader) (string, error) {
	type lineResult struct {
		line string
		err  error
	}

	// The read cannot be interrupted, so wait for it next to ctx
	ch := make(chan lineResult, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		ch <- lineResult{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", goerr.Wrap(ctx.Err(), "confirmation interrupted")
	case res := <-ch:
		if res.err != nil {
			return "", goerr.Wrap(res.err, "failed to read answer")
		}
		return res.line, nil
	}
}
