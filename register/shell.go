package register

import "os/exec"

// ShellExecutor runs the host probes whose output is archived as run metadata.
//
//go:generate mockgen -source shell.go -destination shell_mock.go -package register
type ShellExecutor interface {
	Command(name string, arg ...string) ([]byte, error)
}

type shell struct{}

func (s shell) Command(name string, arg ...string) ([]byte, error) {
	cmd := exec.Command(name, arg...)
	return cmd.CombinedOutput()
}

func NewShell() shell {
	return shell{}
}
