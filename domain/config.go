package domain

import "time"

type Config struct {
	Env         string
	Application string
	Servers     []Host

	DeployTo      string
	UseSudo       bool
	Sudo          string
	SudoPassword  string
	GroupWritable bool

	SSH        SSHConfig
	Monit      MonitConfig
	Unicorn    UnicornConfig
	PostgreSQL PostgreSQLConfig
}

type SSHConfig struct {
	User       string
	Port       int
	Key        string
	Agent      bool
	KnownHosts string
	Insecure   bool
	Timeout    time.Duration
}

type MonitConfig struct {
	Templates  string
	Interval   int
	Port       int
	User       string
	Password   string
	Alert      string
	MailServer string
}

type UnicornConfig struct {
	Workers int
	Pid     string
}

type PostgreSQLConfig struct {
	Version string
}

// NewExecutionContext builds the read-only context handed to the tasks.
func (c Config) NewExecutionContext() ExecutionContext {
	sudo := c.Sudo
	if c.SudoPassword != "" {
		// the password is sent on stdin by the transport
		sudo = c.Sudo + " -S -p ''"
	}

	return ExecutionContext{
		Env:           c.Env,
		Application:   c.Application,
		Hosts:         c.Servers,
		Sudo:          sudo,
		UseSudo:       c.UseSudo,
		DeployTo:      c.DeployTo,
		GroupWritable: c.GroupWritable,
		Monit:         c.Monit,
		Unicorn:       c.Unicorn,
		PostgreSQL:    c.PostgreSQL,
	}
}
