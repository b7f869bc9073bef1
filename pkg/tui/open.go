package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var (
	execCommand = exec.Command
	goos        = runtime.GOOS
	getenv      = os.Getenv
)

// openFile hands path to the desktop's default application without waiting for it.
func openFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}
	var cmd *exec.Cmd
	switch goos {
	case "windows":
		cmd = execCommand("cmd", "/C", "start", "", path)
	case "darwin":
		cmd = execCommand("open", path)
	default:
		cmd = execCommand("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// runShell runs an interactive shell in dir attached to the process's terminal.
func runShell(dir string) error {
	var cmd *exec.Cmd
	switch goos {
	case "windows":
		cmd = execCommand("cmd", "/K")
	default:
		shell := getenv("SHELL")
		if shell == "" {
			shell = "bash"
		}
		cmd = execCommand(shell)
	}
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}
