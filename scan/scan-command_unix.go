//go:build !windows

package scan

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel starts the program in its own process group and kills the
// whole group on cancel, so children holding the output pipes die too.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
