package iocli

import "errors"

//go:generate moq -out io_mock.go . IO

var (
	// ErrEmptyInput is returned when the user submits an empty line.
	ErrEmptyInput = errors.New("empty input")
	// ErrNotDirectory is returned by ReadDirectory for a path that is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNotRegularFile is returned by ReadFilePath for a path that is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)

// IO is the terminal the CLI talks to.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadDirectory asks for a path and returns it in absolute form once it
	// names an existing directory.
	ReadDirectory(prompt string) (string, error)
	// ReadFilePath asks for a path to an existing regular file.
	ReadFilePath(prompt string) (string, error)
	// IsInteractive reports whether input comes from a terminal.
	IsInteractive() bool
	Write(p []byte) (n int, err error)
}
