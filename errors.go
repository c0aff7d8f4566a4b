package signalplot

import "fmt"

// FileError is returned when the input recording cannot be opened or an
// output artifact cannot be written.
type FileError struct {
	Op   string // "open", "create", "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError is returned when the input recording is malformed, for example
// when a data row carries a different number of fields than the header.
type ParseError struct {
	Line int // 1-based line number in the input, 0 when unknown
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError is returned for invalid flag or configuration values, such as
// a non-positive downsample stride.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
