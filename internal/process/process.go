// Package process terminates the Chrome process tree started for a
// converter, including renderer and GPU children that outlive the browser
// connection.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for ids that would address init or the caller's
// own process group.
var ErrInvalidPID = errors.New("invalid process id")

func checkPID(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return nil
}
