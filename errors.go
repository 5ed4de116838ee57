package wezlix

import "fmt"

// Error is returned by Prepare and Run for failures other than the
// terminal's own exit status.
type Error struct {
	// Op names the launch step that failed, such as "load environment
	// file" or "start terminal".
	Op  string
	Err error
	// Help is printed on a hint line below the error when set.
	Help string
}

func (e *Error) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("wezlix: %s: %v\n  hint: %s", e.Op, e.Err, e.Help)
	}
	return fmt.Sprintf("wezlix: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
