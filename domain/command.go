package domain

import (
	"strings"
)

// Command is a shell command line executed on a host. Args are passed to the
// remote shell as is.
type Command struct {
	Sudo string
	Name string
	Args []string
}

func (c Command) String() string {
	parts := []string{}
	if c.Sudo != "" {
		parts = append(parts, c.Sudo)
	}
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)

	return strings.Join(parts, " ")
}

// IsPrivileged reports whether the command runs through sudo.
func (c Command) IsPrivileged() bool {
	return c.Sudo != ""
}

// NewCommand splits the list into the command name and its args. An empty
// list gives an empty command.
func NewCommand(list []string) Command {
	if len(list) == 0 {
		return Command{Args: []string{}}
	}

	return Command{Name: list[0], Args: list[1:]}
}

// NewPrivilegedCommand prefixes the command with sudo. An empty sudo prefix
// gives a plain command.
func NewPrivilegedCommand(sudo string, list []string) Command {
	cmd := NewCommand(list)
	cmd.Sudo = sudo
	return cmd
}
