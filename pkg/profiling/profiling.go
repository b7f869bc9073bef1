// Package profiling writes CPU and heap profiles for a single treetug run.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = func(w io.Writer) error {
		return pprof.WriteHeapProfile(w)
	}
)

// StartCPU starts CPU profiling into path. The returned func stops profiling and closes the file.
func StartCPU(path string) (stop func() error, err error) {
	f, err := osCreate(path)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err = pprofStartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() error {
		pprofStopCPUProfile()
		return f.Close()
	}, nil
}

// WriteHeap writes a heap profile to path after a garbage collection.
func WriteHeap(path string) error {
	f, err := osCreate(path)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	runtime.GC()
	if err = pprofWriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return f.Close()
}
