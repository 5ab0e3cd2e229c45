package testhelper

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"
)

const helperProcessEnv = "NATIVEFD_WANT_HELPER_PROCESS"

// IsHelperProcess reports whether the running test binary was started by [RunSelf].
func IsHelperProcess() bool {
	return os.Getenv(helperProcessEnv) == "1"
}

type ProcessResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// RunSelf starts the test binary again, running only testName with dir as
// working directory, and waits for it.
//
// The helper test must check [IsHelperProcess] and skip otherwise.
// It should end with os.Exit so that the testing framework prints nothing
// to stdout.
func RunSelf(t *testing.T, testName string, dir string, env ...string) ProcessResult {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable failed: %v", err)
	}

	cmd := exec.CommandContext(t.Context(), exe, "-test.run=^"+testName+"$")
	cmd.Dir = dir
	cmd.Env = append(append(os.Environ(), helperProcessEnv+"=1"), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("running helper process %q failed: %v", testName, err)
	}

	return ProcessResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
}
