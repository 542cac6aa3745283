//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillGroup force-kills pid and its child tree with taskkill.
func KillGroup(pid int) error {
	if err := checkPID(pid); err != nil {
		return err
	}
	// #nosec G204 -- pid is an integer
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
