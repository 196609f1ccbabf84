//go:build !unix

package runtimeexec

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
