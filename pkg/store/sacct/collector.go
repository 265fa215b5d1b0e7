package sacct

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/de-tools/top-users/pkg/services/usage"
)

// Output fields requested from sacct: identity, partition, raw CPU seconds.
const defaultFields = "User,Partition,CPUTimeRAW"

// ProcessError reports a non-zero exit of the accounting command. It is
// surfaced only after the output stream has been drained, so lines already
// consumed remain valid.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

type Settings struct {
	// Binary is the accounting command to invoke. Defaults to "sacct".
	Binary string
}

// Collector spawns the accounting query for a date window and streams its
// output line by line. One process is active per Collect call.
type Collector struct {
	settings Settings
}

func NewCollector(settings Settings) *Collector {
	if settings.Binary == "" {
		settings.Binary = "sacct"
	}
	return &Collector{settings: settings}
}

// Collect starts the accounting query for the inclusive window [first, last]
// and returns a stream over its output. The partition hint is passed to the
// command as a server-side filter only when it is fully qualified; otherwise
// all partitions are returned and filtering happens downstream.
func (c *Collector) Collect(
	ctx context.Context,
	first, last time.Time,
	partitionHint string,
) (usage.RecordStream, error) {
	args := buildArgs(first, last, partitionHint)
	cmd := exec.CommandContext(ctx, c.settings.Binary, args...)

	stream := &LineStream{cmd: cmd, name: c.settings.Binary}
	cmd.Stderr = &stream.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.settings.Binary, err)
	}

	stream.scanner = bufio.NewScanner(stdout)
	return stream, nil
}

func buildArgs(first, last time.Time, partitionHint string) []string {
	args := []string{
		"--allusers",
		"--noconvert",
		"-n", "-P",
		"-o", defaultFields,
		"-S", first.Format("2006-01-02"),
		"-E", last.Format("2006-01-02"),
	}
	if usage.Qualified(partitionHint) {
		args = append(args, "--partition", partitionHint)
	}
	return args
}

// LineStream is a single-pass stream over the accounting command's stdout.
// Both the output pipe and the process handle are released on every exit
// path: normal exhaustion (Next returning false) waits for the process, and
// Close reaps it when the consumer stops early.
type LineStream struct {
	cmd     *exec.Cmd
	name    string
	scanner *bufio.Scanner
	stderr  bytes.Buffer
	err     error
	done    bool
}

// Next advances to the next output line. When the stream ends it reaps the
// process and records a ProcessError if the exit status was non-zero.
func (s *LineStream) Next() bool {
	if s.done {
		return false
	}
	if s.scanner.Scan() {
		return true
	}
	s.finish()
	return false
}

// Text returns the current line without its trailing newline.
func (s *LineStream) Text() string {
	return s.scanner.Text()
}

// Err reports a read failure or the process's non-zero exit. It is only
// meaningful once Next has returned false.
func (s *LineStream) Err() error {
	return s.err
}

// Close terminates the stream. Safe to call at any point and idempotent;
// when the consumer abandons the stream mid-iteration the process is killed
// and reaped so no zombie is left behind.
func (s *LineStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	return nil
}

func (s *LineStream) finish() {
	s.done = true
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("read %s output: %w", s.name, err)
		_ = s.cmd.Wait()
		return
	}
	if err := s.cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			s.err = &ProcessError{
				Command:  s.name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(s.stderr.String()),
			}
			return
		}
		s.err = fmt.Errorf("wait for %s: %w", s.name, err)
	}
}
