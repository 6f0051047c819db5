package scan

import "os/exec"

// killGroupOnCancel relies on WaitDelay alone; exec kills only the direct child.
func killGroupOnCancel(cmd *exec.Cmd) {}
