package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

type Stdio struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func NewStdio() IO {
	return NewStdioWith(os.Stdin, os.Stdout)
}

// NewStdioWith builds a Stdio over arbitrary streams. Input counts as
// interactive only when in is a terminal file.
func NewStdioWith(in io.Reader, out io.Writer) *Stdio {
	s := &Stdio{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok {
		s.fd = int(f.Fd())
		s.tty = term.IsTerminal(s.fd)
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsInteractive() bool {
	return s.tty
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil {
		// Последняя строка без перевода строки тоже считается вводом
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadDirectory(prompt string) (string, error) {
	path, info, err := s.readPath(prompt)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return path, nil
}

func (s *Stdio) ReadFilePath(prompt string) (string, error) {
	path, info, err := s.readPath(prompt)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	return path, nil
}

func (s *Stdio) readPath(prompt string) (string, os.FileInfo, error) {
	input, err := s.ReadInput(prompt)
	if err != nil {
		return "", nil, err
	}
	if input == "" {
		return "", nil, ErrEmptyInput
	}

	path, err := ExpandPath(input)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	return path, info, nil
}

// ExpandPath resolves a leading "~" to the home directory and makes the
// path absolute.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return abs, nil
}
