package scan

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// waitDelay bounds how long Scan waits for the program's output to drain after
// it has been killed.
const waitDelay = time.Second

// CommandScanner runs an external program which deposits a report into the
// output directory. The program is not bounded by a timeout, a hung scan
// blocks the caller until it exits or ctx is cancelled. Cancelling ctx kills
// the program together with any children it started, such as nmap.
type CommandScanner struct {
	shell   string
	command string
	args    []string
	stdout  io.Writer
	stderr  io.Writer
}

// NewCommandScanner creates a scanner for command. If shell is set, the command
// is passed to it as a script (e.g. "bash scan_network.sh").
func NewCommandScanner(shell string, command string, args ...string) *CommandScanner {
	return &CommandScanner{
		shell:   shell,
		command: command,
		args:    args,
	}
}

// WithOutput sets where the program's stdout and stderr go. Both are discarded
// by default.
func (s *CommandScanner) WithOutput(stdout, stderr io.Writer) *CommandScanner {
	s.stdout = stdout
	s.stderr = stderr
	return s
}

func (s *CommandScanner) String() string {
	if s.shell != "" {
		return fmt.Sprintf("%s %s", s.shell, s.command)
	}
	return s.command
}

func (s *CommandScanner) Scan(ctx context.Context) error {
	name, args := s.command, s.args
	if s.shell != "" {
		name, args = s.shell, append([]string{s.command}, s.args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("scan command %q failed: %w", s.String(), err)
	}
	return nil
}
