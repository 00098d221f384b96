package domain

type ExecutionContext struct {
	Env         string
	Application string
	Hosts       []Host

	// Sudo is the prefix of every privileged command (i.e. "sudo").
	Sudo    string
	UseSudo bool

	DeployTo      string
	GroupWritable bool

	Monit      MonitConfig
	Unicorn    UnicornConfig
	PostgreSQL PostgreSQLConfig
}

func (ctx ExecutionContext) IsProd() bool {
	return ctx.Env == "prod"
}

// HostsWithRole returns the hosts carrying one of the roles, in configuration order.
func (ctx ExecutionContext) HostsWithRole(roles ...Role) []Host {
	hosts := []Host{}
	for _, h := range ctx.Hosts {
		if h.HasRole(roles...) {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// TrySudo is the prefix used by commands that only need privileges when 'use_sudo' is set.
func (ctx ExecutionContext) TrySudo() string {
	if ctx.UseSudo {
		return ctx.Sudo
	}
	return ""
}

func (ctx ExecutionContext) ReleasesPath() string {
	return ctx.DeployTo + "/releases"
}

func (ctx ExecutionContext) SharedPath() string {
	return ctx.DeployTo + "/shared"
}

func (ctx ExecutionContext) CurrentPath() string {
	return ctx.DeployTo + "/current"
}
