package domain

// Database is the database server watched by monit on the db hosts.
type Database int

const (
	PostgreSQL Database = iota
	MySQL
)

// legacyApplication is the only application still running on MySQL.
const legacyApplication = "rusrails_v32"

// DatabaseForApplication resolves the database variant of an application.
// Every application uses PostgreSQL, except the legacy one.
func DatabaseForApplication(application string) Database {
	if application == legacyApplication {
		return MySQL
	}
	return PostgreSQL
}

func (d Database) String() string {
	switch d {
	case MySQL:
		return "mysql"
	default:
		return "postgresql"
	}
}
