package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"webup/monit/domain"
	"webup/monit/utils"
)

const (
	DefaultFilename = "monit.yml"
	DefaultEnvFile  = ".env"

	// PromptSudoPassword as 'sudo_password' asks the password when the tool starts.
	PromptSudoPassword = "prompt"
)

// Environment variables overriding the config file.
const (
	EnvApplication   = "MONIT_APPLICATION"
	EnvHTTPDPassword = "MONIT_HTTPD_PASSWORD"
	EnvSudoPassword  = "MONIT_SUDO_PASSWORD"
)

var loadedConfig *domain.Config

// Check loads the config file once and validates it.
func Check(filename string) error {
	if loadedConfig == nil {
		config, err := Load(filename)
		if err != nil {
			return err
		}
		loadedConfig = &config
	}

	return nil
}

func Get() domain.Config {
	return *loadedConfig
}

// LoadEnv sets the variables of the env file. A missing file is not an error.
func LoadEnv(filename string) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(filename)
}

// Load parses and validates the config file.
func Load(filename string) (domain.Config, error) {
	config := domain.Config{}

	configFile, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "unable to find a config file '%s'", filename)
	}

	var parsed parserConfig
	if err := yaml.Unmarshal(configFile, &parsed); err != nil {
		return config, errors.Wrapf(err, "unable to parse the config file, check '%s' syntax", filename)
	}

	parsed.applyEnv()

	if err := parsed.convertToConfig(&config); err != nil {
		return config, errors.Wrapf(err, "invalid config file '%s'", filename)
	}

	return config, nil
}

type parserConfig struct {
	Env           string         `yaml:"env"`
	Application   string         `yaml:"application"`
	DeployTo      string         `yaml:"deploy_to"`
	UseSudo       *bool          `yaml:"use_sudo"`
	Sudo          string         `yaml:"sudo"`
	SudoPassword  string         `yaml:"sudo_password"`
	GroupWritable *bool          `yaml:"group_writable"`
	SSH           SSHSpec        `yaml:"ssh"`
	Servers       []ServerSpec   `yaml:"servers"`
	Monit         MonitSpec      `yaml:"monit"`
	Unicorn       UnicornSpec    `yaml:"unicorn"`
	PostgreSQL    PostgreSQLSpec `yaml:"postgresql"`
}

func (parsed *parserConfig) applyEnv() {
	if value := os.Getenv(EnvApplication); value != "" {
		parsed.Application = value
	}
	if value := os.Getenv(EnvHTTPDPassword); value != "" {
		parsed.Monit.Password = value
	}
	if value := os.Getenv(EnvSudoPassword); value != "" {
		parsed.SudoPassword = value
	}
}

func (parsed parserConfig) convertToConfig(config *domain.Config) error {
	if parsed.Application == "" {
		return errors.New("'application' is required")
	}
	config.Env = parsed.Env
	config.Application = parsed.Application

	// ssh
	config.SSH = domain.SSHConfig{
		User:       parsed.SSH.User,
		Port:       22,
		Key:        parsed.SSH.Key,
		Agent:      true,
		KnownHosts: "~/.ssh/known_hosts",
		Insecure:   parsed.SSH.Insecure,
		Timeout:    10 * time.Second,
	}
	if config.SSH.User == "" {
		config.SSH.User = os.Getenv("USER")
	}
	if parsed.SSH.Port != 0 {
		config.SSH.Port = parsed.SSH.Port
	}
	if parsed.SSH.Agent != nil {
		config.SSH.Agent = *parsed.SSH.Agent
	}
	if parsed.SSH.KnownHosts != "" {
		config.SSH.KnownHosts = parsed.SSH.KnownHosts
	}
	if parsed.SSH.Timeout != "" {
		timeout, err := time.ParseDuration(parsed.SSH.Timeout)
		if err != nil {
			return errors.Wrap(err, "invalid 'ssh.timeout'")
		}
		config.SSH.Timeout = timeout
	}

	// servers
	if len(parsed.Servers) == 0 {
		return errors.New("at least one server is required")
	}
	servers := []domain.Host{}
	for _, serverSpec := range parsed.Servers {
		spec, err := utils.ParseHostSpec(serverSpec.Host)
		if err != nil {
			return err
		}

		host := domain.Host{Name: spec.Address, Address: spec.Address, User: spec.User, Port: spec.Port}
		if host.User == "" {
			host.User = config.SSH.User
		}
		if host.Port == 0 {
			host.Port = config.SSH.Port
		}
		for _, name := range serverSpec.Roles {
			role := domain.Role(name)
			if !role.IsValid() {
				return fmt.Errorf("unknown role '%s' for server '%s'", name, serverSpec.Host)
			}
			host.Roles = append(host.Roles, role)
		}
		servers = append(servers, host)
	}
	config.Servers = servers

	// deployment
	config.DeployTo = parsed.DeployTo
	if config.DeployTo == "" {
		config.DeployTo = path.Join("/home", config.SSH.User, "apps", config.Application)
	}
	config.UseSudo = true
	if parsed.UseSudo != nil {
		config.UseSudo = *parsed.UseSudo
	}
	config.Sudo = "sudo"
	if parsed.Sudo != "" {
		config.Sudo = parsed.Sudo
	}
	config.SudoPassword = parsed.SudoPassword
	config.GroupWritable = true
	if parsed.GroupWritable != nil {
		config.GroupWritable = *parsed.GroupWritable
	}

	// monit
	config.Monit = domain.MonitConfig{
		Templates:  parsed.Monit.Templates,
		Interval:   30,
		Port:       2812,
		User:       "admin",
		Password:   parsed.Monit.Password,
		Alert:      parsed.Monit.Alert,
		MailServer: parsed.Monit.MailServer,
	}
	if parsed.Monit.Interval != 0 {
		config.Monit.Interval = parsed.Monit.Interval
	}
	if parsed.Monit.Port != 0 {
		config.Monit.Port = parsed.Monit.Port
	}
	if parsed.Monit.User != "" {
		config.Monit.User = parsed.Monit.User
	}

	// unicorn
	config.Unicorn = domain.UnicornConfig{
		Workers: 2,
		Pid:     path.Join(config.DeployTo, "shared", "pids", "unicorn.pid"),
	}
	if parsed.Unicorn.Workers != 0 {
		config.Unicorn.Workers = parsed.Unicorn.Workers
	}
	if parsed.Unicorn.Pid != "" {
		config.Unicorn.Pid = parsed.Unicorn.Pid
	}

	config.PostgreSQL = domain.PostgreSQLConfig{Version: parsed.PostgreSQL.Version}

	return nil
}
