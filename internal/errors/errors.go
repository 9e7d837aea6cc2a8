package errors

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	CodeInternal  ErrorCode = "INTERNAL_ERROR"
	CodeConfig    ErrorCode = "CONFIG_ERROR"
	CodeParse     ErrorCode = "PARSE_ERROR"
	CodeIO        ErrorCode = "IO_ERROR"
	CodeAggregate ErrorCode = "AGGREGATE_ERROR"
	CodeRender    ErrorCode = "RENDER_ERROR"
)

// ReportError is the coded error used across the pipeline. Parse, IO and
// config errors are fatal for the whole run; aggregate and render errors
// stay local to the section that produced them.
type ReportError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Cause     error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Section   string    `json:"section,omitempty"`
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *ReportError {
	return &ReportError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func Wrap(err error, code ErrorCode, message string) *ReportError {
	return &ReportError{
		Code:      code,
		Message:   message,
		Cause:     err,
		Timestamp: time.Now().UTC(),
	}
}

func Internal(message string) *ReportError {
	return New(CodeInternal, message)
}

func Config(message string) *ReportError {
	return New(CodeConfig, message)
}

func ConfigWrap(err error, message string) *ReportError {
	return Wrap(err, CodeConfig, message)
}

func Parse(message string) *ReportError {
	return New(CodeParse, message)
}

func ParseWrap(err error, message string) *ReportError {
	return Wrap(err, CodeParse, message)
}

func IO(message string) *ReportError {
	return New(CodeIO, message)
}

func IOWrap(err error, message string) *ReportError {
	return Wrap(err, CodeIO, message)
}

func Aggregate(message string) *ReportError {
	return New(CodeAggregate, message)
}

func Render(message string) *ReportError {
	return New(CodeRender, message)
}

func RenderWrap(err error, message string) *ReportError {
	return Wrap(err, CodeRender, message)
}

// ExitCode maps an error to the process exit status. Section-local errors
// never reach this path during a normal run.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch e := err.(type) {
	case *ReportError:
		switch e.Code {
		case CodeConfig:
			return 1
		case CodeParse:
			return 2
		case CodeIO:
			return 3
		default:
			return 1
		}
	default:
		return 1
	}
}
