package profiling

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: the tests replace package level seams.

func TestStartCPU(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	stop, err := StartCPU(path)
	require.NoError(t, err)
	require.NoError(t, stop())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStartCPU_errors(t *testing.T) {
	origCreate, origStart := osCreate, pprofStartCPUProfile
	defer func() {
		osCreate, pprofStartCPUProfile = origCreate, origStart
	}()

	t.Run("create", func(t *testing.T) {
		osCreate = func(string) (*os.File, error) {
			return nil, errors.New("mock error")
		}
		defer func() { osCreate = origCreate }()
		_, err := StartCPU("ignored")
		assert.ErrorContains(t, err, "could not create CPU profile")
	})

	t.Run("start", func(t *testing.T) {
		pprofStartCPUProfile = func(io.Writer) error {
			return errors.New("mock pprof error")
		}
		_, err := StartCPU(filepath.Join(t.TempDir(), "cpu.prof"))
		assert.ErrorContains(t, err, "mock pprof error")
	})
}

func TestWriteHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.prof")
	require.NoError(t, WriteHeap(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteHeap_errors(t *testing.T) {
	origCreate, origWrite := osCreate, pprofWriteHeapProfile
	defer func() {
		osCreate, pprofWriteHeapProfile = origCreate, origWrite
	}()

	t.Run("create", func(t *testing.T) {
		osCreate = func(string) (*os.File, error) {
			return nil, errors.New("mock error")
		}
		defer func() { osCreate = origCreate }()
		assert.ErrorContains(t, WriteHeap("ignored"), "could not create memory profile")
	})

	t.Run("write", func(t *testing.T) {
		pprofWriteHeapProfile = func(io.Writer) error {
			return errors.New("mock pprof error")
		}
		assert.ErrorContains(t, WriteHeap(filepath.Join(t.TempDir(), "mem.prof")), "mock pprof error")
	})
}
