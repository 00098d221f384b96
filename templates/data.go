package templates

import (
	"fmt"
	"path"
	"strings"

	"webup/monit/domain"
)

// Data is the value the templates are executed with.
type Data struct {
	Application string
	CurrentPath string
	SharedPath  string
	Monit       domain.MonitConfig
	Unicorn     domain.UnicornConfig
	PostgreSQL  domain.PostgreSQLConfig
}

func NewData(ctx domain.ExecutionContext) Data {
	return Data{
		Application: ctx.Application,
		CurrentPath: ctx.CurrentPath(),
		SharedPath:  ctx.SharedPath(),
		Monit:       ctx.Monit,
		Unicorn:     ctx.Unicorn,
		PostgreSQL:  ctx.PostgreSQL,
	}
}

// UnicornWorkers returns the worker numbers, starting at 0.
func (d Data) UnicornWorkers() []int {
	workers := make([]int, d.Unicorn.Workers)
	for i := range workers {
		workers[i] = i
	}
	return workers
}

// WorkerPid is the pid file of the worker n, next to the master one
// (unicorn.pid -> unicorn.0.pid).
func (d Data) WorkerPid(n int) string {
	dir, file := path.Split(d.Unicorn.Pid)
	ext := path.Ext(file)
	return fmt.Sprintf("%s%s.%d%s", dir, strings.TrimSuffix(file, ext), n, ext)
}
