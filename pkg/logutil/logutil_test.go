package logutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"DEBUG", DEBUG, false},
		{"info", INFO, false},
		{" Warn ", WARN, false},
		{"ERROR", ERROR, false},
		{"trace", INFO, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFlagValue(t *testing.T) {
	l := WARN
	assert.Equal(t, "WARN", l.String())
	assert.Equal(t, "loglevel", l.Type())
	require.NoError(t, l.Set("debug"))
	assert.Equal(t, DEBUG, l)
	assert.Error(t, l.Set("loud"))
	assert.Equal(t, DEBUG, l)
}

type trialInfo struct {
	Trial     int
	Threshold float64
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, WARN)
	defer SetOutput(&buf, INFO)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("struct %v", trialInfo{Trial: 4, Threshold: 0.5})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "Trial: 4")
	assert.Contains(t, out, "logutil_test.go")
}

func TestSliceArgsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, DEBUG)
	defer SetOutput(&buf, INFO)

	Debug("sizes=%s", []int{10, 20})
	assert.Contains(t, buf.String(), "sizes=[10,20]")
	assert.True(t, Enabled(DEBUG))
}

// 并发写日志的同时切换输出，配合 -race 检查 logger 的读写都在锁内
func TestConcurrentLogAndSetOutput(t *testing.T) {
	var a, b bytes.Buffer
	SetOutput(&a, INFO)
	defer SetOutput(&a, INFO)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Info("worker %d line %d", id, j)
			}
		}(i)
	}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			SetOutput(&b, INFO)
		} else {
			SetOutput(&a, INFO)
		}
	}
	wg.Wait()

	total := strings.Count(a.String(), "[INFO]") + strings.Count(b.String(), "[INFO]")
	assert.Equal(t, 8*50, total)
}
