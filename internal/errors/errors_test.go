package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestReportError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := IOWrap(cause, "write chart image")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}

	var reportErr *ReportError
	if !stderrors.As(err, &reportErr) {
		t.Fatal("errors.As should find the ReportError")
	}
	if reportErr.Code != CodeIO {
		t.Errorf("expected %s, got %s", CodeIO, reportErr.Code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "config", err: Config("bad workers"), want: 1},
		{name: "parse", err: Parse("missing column"), want: 2},
		{name: "io", err: IO("unreadable"), want: 3},
		{name: "internal", err: Internal("boom"), want: 1},
		{name: "plain error", err: fmt.Errorf("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
