package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Credentials carry the basic-auth pair for the directory service.
type Credentials struct {
	User     string
	Password string
}

// LoadCredentials reads the [directory] section of an ini profile file.
func LoadCredentials(path string) (*Credentials, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}

	section := cfg.Section("directory")
	creds := &Credentials{
		User:     section.Key("user").String(),
		Password: section.Key("password").String(),
	}
	if creds.User == "" {
		return nil, fmt.Errorf("profile %s has no directory user", path)
	}
	return creds, nil
}
