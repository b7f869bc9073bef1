package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainRoot(t *testing.T) {
	oldRun, oldExit := run, osExit
	defer func() {
		run, osExit = oldRun, oldExit
	}()

	t.Run("ok", func(t *testing.T) {
		runCalled := false
		run = func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
			runCalled = true
			return nil
		}
		osExit = func(code int) {
			t.Fatalf("unexpected exit with code %d", code)
		}
		main()
		assert.True(t, runCalled)
	})

	t.Run("error", func(t *testing.T) {
		run = func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
			return errors.New("boom")
		}
		exitCode := -1
		osExit = func(code int) {
			exitCode = code
		}
		main()
		assert.Equal(t, 1, exitCode)
	})
}

func Test_reportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("test error"))
	assert.Equal(t, "Error: test error\n", buf.String())
}
