//go:build !unix

package launch

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
