package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type inputResult struct {
	text string
	err  error
}

func (r *Runner) initPump() {
	r.startOnce.Do(func() {
		r.lines = make(chan inputResult)
		go r.pump()
	})
}

// pump reads lines in the background so a prompt can be abandoned when the
// context ends.
func (r *Runner) pump() {
	reader := bufio.NewReader(r.input)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			r.lines <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				r.lines <- inputResult{err: err}
			}
			close(r.lines)
			return
		}
	}
}

// ask prints prompt and returns the next line, trimmed.
func (r *Runner) ask(ctx context.Context, prompt string) (string, error) {
	r.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprint(r.output, prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}
