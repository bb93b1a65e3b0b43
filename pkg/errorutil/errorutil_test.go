package errorutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, CodeSuccess},
		{"invalid argument", InvalidArgf("n=%d", 0), CodeInvalidUsage},
		{"wrapped invalid argument", fmt.Errorf("stats: %w", InvalidArgf("trials=%d", -1)), CodeInvalidUsage},
		{"deadline", fmt.Errorf("trial 3: %w", context.DeadlineExceeded), CodeTempFail},
		{"explicit code wins", NewExitError(CodeConfigError, InvalidArgf("x")), CodeConfigError},
		{"unknown", errors.New("boom"), CodeInternalErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestIsInvalidArgument(t *testing.T) {
	err := fmt.Errorf("grid: %w", InvalidArgf("row %d out of range", 7))
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "row 7 out of range")
	assert.False(t, IsInvalidArgument(errors.New("other")))
}

func TestFormatErrorAndCode(t *testing.T) {
	err := NewExitErrorWithMessage(CodeMissingInput, "配置文件不存在", errors.New("open x.ini"))
	js, code := FormatErrorAndCode(err)
	assert.Equal(t, CodeMissingInput, code)
	assert.Equal(t, `{"code":65,"message":"配置文件不存在","error":"open x.ini"}`, js)
	assert.Equal(t, "配置文件不存在", UserMessage(err))

	js, code = FormatErrorAndCode(InvalidArgf("n=0"))
	assert.Equal(t, CodeInvalidUsage, code)
	assert.Equal(t, `{"code":64,"error":"invalid argument: n=0"}`, js)
	assert.Equal(t, ErrInvalidArgument, RootError(InvalidArgf("n=0")))
}
