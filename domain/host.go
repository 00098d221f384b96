package domain

import (
	"net"
	"strconv"
	"strings"
)

type Role string

const (
	RoleWeb Role = "web"
	RoleApp Role = "app"
	RoleDb  Role = "db"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleWeb, RoleApp, RoleDb:
		return true
	}
	return false
}

type Host struct {
	Name    string
	Address string
	User    string
	Port    int
	Roles   []Role
}

// HasRole reports whether the host carries one of the given roles.
// An empty list matches every host.
func (h Host) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, want := range roles {
		for _, r := range h.Roles {
			if r == want {
				return true
			}
		}
	}
	return false
}

func (h Host) IsLocal() bool {
	return h.Address == "localhost" || h.Address == "127.0.0.1" || h.Address == "::1"
}

func (h Host) String() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Address
}

func (h Host) RoleNames() string {
	names := make([]string, len(h.Roles))
	for i, r := range h.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// Dial returns the "address:port" pair used to open a connection.
func (h Host) Dial() string {
	port := h.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(h.Address, strconv.Itoa(port))
}
