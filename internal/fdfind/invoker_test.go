package fdfind

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/stguard/internal/logging"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// fakePath resolves only the names in the set.
func fakePath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

// scriptedRunner replays exit codes, then succeeds with output.
type scriptedRunner struct {
	exitCodes []int
	output    []byte
	calls     int
	binaries  []string
	args      [][]string
}

func (r *scriptedRunner) run(_ context.Context, binary string, args []string) ([]byte, error) {
	r.calls++
	r.binaries = append(r.binaries, binary)
	r.args = append(r.args, args)
	if r.calls <= len(r.exitCodes) {
		return []byte("partial"), &stguard.ExternalToolError{Binary: binary, Args: args, ExitCode: r.exitCodes[r.calls-1]}
	}
	return r.output, nil
}

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func newTestInvoker(runner *scriptedRunner, sleeper *sleepRecorder, found ...string) *Invoker {
	return NewInvokerWithRunner(Options{}, logging.NewNullLogger(), fakePath(found...), runner.run).
		WithSleep(sleeper.sleep)
}

func TestInvoker_Resolve_PrefersFirstName(t *testing.T) {
	inv := newTestInvoker(&scriptedRunner{}, &sleepRecorder{}, "fd", "fdfind")

	path, err := inv.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/fdfind", path)
}

func TestInvoker_Resolve_FallsBackToSecondName(t *testing.T) {
	inv := newTestInvoker(&scriptedRunner{}, &sleepRecorder{}, "fd")

	path, err := inv.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/fd", path)
}

func TestInvoker_Run_ToolNotFound(t *testing.T) {
	runner := &scriptedRunner{}
	inv := newTestInvoker(runner, &sleepRecorder{})

	_, err := inv.Run(context.Background(), "--version")
	assert.ErrorIs(t, err, stguard.ErrToolNotFound)
	assert.Equal(t, 0, runner.calls, "runner must not be called without a binary")
}

func TestInvoker_Run_Success(t *testing.T) {
	runner := &scriptedRunner{output: []byte("a\x00b\x00")}
	sleeper := &sleepRecorder{}
	inv := newTestInvoker(runner, sleeper, "fd")

	out, err := inv.Run(context.Background(), "--hidden", "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("a\x00b\x00"), out)
	assert.Equal(t, []string{"/usr/bin/fd"}, runner.binaries)
	assert.Equal(t, [][]string{{"--hidden", "x"}}, runner.args)
	assert.Empty(t, sleeper.delays)
}

func TestInvoker_Run_RetriesTransientCrash(t *testing.T) {
	runner := &scriptedRunner{exitCodes: []int{101, 101, 101}, output: []byte("ok\x00")}
	sleeper := &sleepRecorder{}
	inv := newTestInvoker(runner, sleeper, "fd")

	out, err := inv.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("ok\x00"), out, "output of the successful attempt is returned")
	assert.Equal(t, 4, runner.calls)

	var total time.Duration
	for _, d := range sleeper.delays {
		total += d
	}
	assert.Equal(t, 30*time.Second, total)
}

func TestInvoker_Run_RetriesExhausted(t *testing.T) {
	runner := &scriptedRunner{exitCodes: []int{101, 101, 101, 101, 101}, output: []byte("never")}
	sleeper := &sleepRecorder{}
	inv := newTestInvoker(runner, sleeper, "fd")

	out, err := inv.Run(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, stguard.ErrRetriesExhausted)
	assert.Equal(t, 5, runner.calls)
	assert.Len(t, sleeper.delays, 4)
}

func TestInvoker_Run_OtherExitCodeFailsImmediately(t *testing.T) {
	runner := &scriptedRunner{exitCodes: []int{1}}
	sleeper := &sleepRecorder{}
	inv := newTestInvoker(runner, sleeper, "fd")

	_, err := inv.Run(context.Background())

	var toolErr *stguard.ExternalToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.ErrorIs(t, err, stguard.ErrExternalTool)
	assert.NotErrorIs(t, err, stguard.ErrRetriesExhausted)
	assert.Equal(t, 1, runner.calls)
	assert.Empty(t, sleeper.delays)
}

func TestInvoker_Options(t *testing.T) {
	runner := &scriptedRunner{exitCodes: []int{7, 7}}
	sleeper := &sleepRecorder{}
	inv := NewInvokerWithRunner(Options{
		Binaries:           []string{"fd-find"},
		Attempts:           2,
		RetryDelay:         time.Second,
		TransientExitCodes: []int{7},
	}, logging.NewNullLogger(), fakePath("fd-find"), runner.run).WithSleep(sleeper.sleep)

	_, err := inv.Run(context.Background())
	assert.ErrorIs(t, err, stguard.ErrRetriesExhausted)
	assert.Equal(t, 2, runner.calls)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.delays)
}

func TestRunCommand_ExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := RunCommand(context.Background(), "sh", []string{"-c", "printf 'a\\0'"})
	require.NoError(t, err)
	assert.Equal(t, []byte("a\x00"), out)

	_, err = RunCommand(context.Background(), "sh", []string{"-c", "echo broken >&2; exit 101"})
	var toolErr *stguard.ExternalToolError
	require.True(t, errors.As(err, &toolErr), "got %v", err)
	assert.Equal(t, 101, toolErr.ExitCode)
	assert.Contains(t, toolErr.Stderr, "broken")
}

func TestRunCommand_KilledBySignal(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := RunCommand(context.Background(), "sh", []string{"-c", "kill -9 $$"})
	var toolErr *stguard.ExternalToolError
	require.True(t, errors.As(err, &toolErr), "got %v", err)
	assert.Equal(t, -1, toolErr.ExitCode)
	assert.Contains(t, err.Error(), "terminated by a signal")
	assert.Equal(t, stguard.ExitToolFailed, stguard.ExitCodeForError(err))
}

func TestRunCommand_CanceledContext(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunCommand(ctx, "sh", []string{"-c", "exit 0"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, stguard.ErrExternalTool)
}

func TestInvoker_Run_SignalIsNotRetried(t *testing.T) {
	runner := &scriptedRunner{exitCodes: []int{-1}}
	sleeper := &sleepRecorder{}
	inv := newTestInvoker(runner, sleeper, "fd")

	_, err := inv.Run(context.Background())

	assert.ErrorIs(t, err, stguard.ErrExternalTool)
	assert.NotErrorIs(t, err, stguard.ErrRetriesExhausted)
	assert.Equal(t, stguard.ExitToolFailed, stguard.ExitCodeForError(err))
	assert.Equal(t, 1, runner.calls)
}
