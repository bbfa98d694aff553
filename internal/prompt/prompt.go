// Package prompt reads the master secret from the user without echoing it.
package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var ErrInterrupted = errors.New("prompt interrupted")

// SecretReader acquires a secret. Callers own the returned slice and should zero it when done.
type SecretReader interface {
	ReadSecret(ctx context.Context, label string) ([]byte, error)
}

// Terminal prompts on Out and reads from In. When In is a terminal, echo is disabled.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// NewTerminal creates a Terminal bound to stdin and stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

type readResult struct {
	secret []byte
	err    error
}

// ReadSecret blocks until a line is entered or ctx is cancelled.
func (t *Terminal) ReadSecret(ctx context.Context, label string) ([]byte, error) {
	fmt.Fprint(t.Out, label)

	fd := int(t.In.Fd())
	if !term.IsTerminal(fd) {
		return readLine(ctx, t.In)
	}

	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}

	done := make(chan readResult, 1)
	go func() {
		secret, err := term.ReadPassword(fd)
		done <- readResult{secret: secret, err: err}
	}()

	select {
	case res := <-done:
		fmt.Fprintln(t.Out)
		return res.secret, res.err
	case <-ctx.Done():
		// ReadPassword is still blocked; put echo back before leaving.
		_ = term.Restore(fd, state)
		fmt.Fprintln(t.Out)
		return nil, ErrInterrupted
	}
}

func readLine(ctx context.Context, r io.Reader) ([]byte, error) {
	done := make(chan readResult, 1)
	go func() {
		line, err := readUntilNewline(r)
		done <- readResult{secret: line, err: err}
	}()

	select {
	case res := <-done:
		return res.secret, res.err
	case <-ctx.Done():
		return nil, ErrInterrupted
	}
}

// readUntilNewline reads one byte at a time so no buffer outside the returned
// slice ever holds the secret. Outgrown backing arrays are zeroed.
func readUntilNewline(r io.Reader) ([]byte, error) {
	var one [1]byte
	defer func() { one[0] = 0 }()

	line := make([]byte, 0, 64)
	for {
		n, err := r.Read(one[:])
		if n > 0 {
			if one[0] == '\n' {
				break
			}
			if len(line) == cap(line) {
				grown := make([]byte, len(line), 2*cap(line))
				copy(grown, line)
				Zero(line)
				line = grown
			}
			line = append(line, one[0])
		}
		if err == io.EOF {
			if len(line) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			Zero(line)
			return nil, err
		}
	}
	return bytes.TrimRight(line, "\r"), nil
}

// Static returns the same secret on every call.
type Static []byte

func (s Static) ReadSecret(ctx context.Context, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrInterrupted
	}
	return bytes.Clone(s), nil
}

// Zero overwrites a secret in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
