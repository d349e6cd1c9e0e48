// Package config reads connection profiles for the describe command. A profile is a
// TOML file with a [connection] table and an optional [connection.options] table whose
// values become typed dialect options.
package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"dbdiff/internal/introspect"
	"dbdiff/internal/introspect/postgresql"
)

// PasswordEnv overrides the profile password when set.
const PasswordEnv = "DBDIFF_PASSWORD"

// profileFile is the top-level TOML document.
type profileFile struct {
	Connection tomlConnection `toml:"connection"`
}

// tomlConnection maps [connection].
type tomlConnection struct {
	DSN      string         `toml:"dsn"`
	Host     string         `toml:"host"`
	Port     int            `toml:"port"`
	Username string         `toml:"username"`
	Password string         `toml:"password"`
	Database string         `toml:"database"`
	Driver   string         `toml:"driver"`
	Workers  int            `toml:"workers"`
	Timeout  string         `toml:"timeout"`
	Options  map[string]any `toml:"options"`
}

// Profile is a decoded connection profile.
type Profile struct {
	Connection introspect.ConnectionOptions
	// Timeout bounds the whole describe call; zero means no deadline.
	Timeout time.Duration
}

// Load opens the file at the given path and parses it as a connection profile.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads TOML content from reader and returns the corresponding Profile.
// The password is replaced by $DBDIFF_PASSWORD when that variable is set.
func Parse(r io.Reader) (*Profile, error) {
	var pf profileFile
	md, err := toml.NewDecoder(r).Decode(&pf)
	if err != nil {
		return nil, fmt.Errorf("config: decode error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}

	c := pf.Connection
	options, err := convertOptions(c.Options)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Connection: introspect.ConnectionOptions{
			DSN:            c.DSN,
			Host:           c.Host,
			Port:           c.Port,
			Username:       c.Username,
			Password:       c.Password,
			Database:       c.Database,
			DialectOptions: options,
			Driver:         c.Driver,
			MaxConns:       c.Workers,
		},
	}
	if c.Timeout != "" {
		p.Timeout, err = time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
		}
	}
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		p.Connection.Password = pw
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// convertOptions maps TOML values onto typed dialect options. Only strings, booleans
// and integers have a defined serialization; anything else is rejected.
func convertOptions(raw map[string]any) (introspect.DialectOptions, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(introspect.DialectOptions, len(raw))
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			out[k] = introspect.StringOption(v)
		case bool:
			out[k] = introspect.BoolOption(v)
		case int64:
			out[k] = introspect.IntOption(v)
		default:
			return nil, fmt.Errorf("config: option %q has unsupported type %T; use a string, boolean or integer", k, v)
		}
	}
	return out, nil
}

// Validate checks the driver name and the numeric limits.
func (p *Profile) Validate() error {
	c := p.Connection
	if c.Driver != "" && !slices.Contains(postgresql.Drivers(), c.Driver) {
		return fmt.Errorf("config: unsupported driver %q; use one of %v", c.Driver, postgresql.Drivers())
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.MaxConns)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if p.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", p.Timeout)
	}
	return nil
}
