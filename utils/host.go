package utils

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HostSpec is a server address as written in the config file: [user@]address[:port].
type HostSpec struct {
	User    string
	Address string
	Port    int
}

func ParseHostSpec(spec string) (HostSpec, error) {
	parsed := HostSpec{}

	spec = strings.TrimSpace(spec)
	if i := strings.LastIndex(spec, "@"); i >= 0 {
		parsed.User = spec[:i]
		spec = spec[i+1:]
	}

	address, port, err := net.SplitHostPort(spec)
	if err != nil {
		// no port
		address = strings.Trim(spec, "[]")
	} else {
		parsed.Port, err = strconv.Atoi(port)
		if err != nil || parsed.Port <= 0 || parsed.Port > 65535 {
			return parsed, fmt.Errorf("invalid port in '%s'", spec)
		}
	}

	if address == "" {
		return parsed, fmt.Errorf("missing address in '%s'", spec)
	}
	parsed.Address = address

	return parsed, nil
}

// ExpandHome replaces a leading "~/" with the home directory of the current user.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}
