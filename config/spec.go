package config

// Specs of the sections of 'monit.yml'.

type ServerSpec struct {
	Host  string   `yaml:"host"`
	Roles []string `yaml:"roles"`
}

type SSHSpec struct {
	User       string `yaml:"user"`
	Port       int    `yaml:"port"`
	Key        string `yaml:"key"`
	Agent      *bool  `yaml:"agent"`
	KnownHosts string `yaml:"known_hosts"`
	Insecure   bool   `yaml:"insecure"`
	Timeout    string `yaml:"timeout"`
}

type MonitSpec struct {
	Templates  string `yaml:"templates"`
	Interval   int    `yaml:"interval"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Alert      string `yaml:"alert"`
	MailServer string `yaml:"mailserver"`
}

type UnicornSpec struct {
	Workers int    `yaml:"workers"`
	Pid     string `yaml:"pid"`
}

type PostgreSQLSpec struct {
	Version string `yaml:"version"`
}
