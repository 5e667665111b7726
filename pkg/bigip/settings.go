package bigip

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultPartition     = "Common"
	DefaultLoginProvider = "tmos"
	DefaultTimeout       = 30 * time.Second
)

// Environment variables read by LoadSettings.
const (
	EnvHost          = "BIGIP_HOST"
	EnvToken         = "BIGIP_TOKEN"
	EnvUsername      = "BIGIP_USERNAME"
	EnvPassword      = "BIGIP_PASSWORD"
	EnvPartition     = "BIGIP_PARTITION"
	EnvVerifySSL     = "BIGIP_VERIFY_SSL"
	EnvLoginProvider = "BIGIP_LOGIN_PROVIDER"
	EnvTimeout       = "BIGIP_TIMEOUT"
)

// Settings is the connection configuration of a Client. Treat it as immutable once loaded.
type Settings struct {
	Host          string        `validate:"required,http_url"`
	Token         string
	Username      string
	Password      string
	Partition     string        `validate:"required,excludesall=/~"`
	VerifyTLS     bool
	LoginProvider string        `validate:"required"`
	Timeout       time.Duration `validate:"gt=0"`
}

// fileSettings mirrors Settings for TOML decoding; nil pointers mean "not set".
type fileSettings struct {
	Host          *string `toml:"host"`
	Token         *string `toml:"token"`
	Username      *string `toml:"username"`
	Password      *string `toml:"password"`
	Partition     *string `toml:"partition"`
	VerifyTLS     *bool   `toml:"verify_tls"`
	LoginProvider *string `toml:"login_provider"`
	Timeout       *string `toml:"timeout"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultSettings returns settings with every optional field at its default.
func DefaultSettings() Settings {
	return Settings{
		Partition:     DefaultPartition,
		VerifyTLS:     true,
		LoginProvider: DefaultLoginProvider,
		Timeout:       DefaultTimeout,
	}
}

// LoadSettings builds Settings from defaults, then the optional TOML file at path,
// then the environment. Environment values win over the file.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := s.mergeEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	s.Host = strings.TrimRight(s.Host, "/")
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SettingsFromEnv is LoadSettings without a config file.
func SettingsFromEnv() (*Settings, error) {
	return LoadSettings("")
}

func (s *Settings) mergeFile(path string) error {
	var fs fileSettings
	if _, err := toml.DecodeFile(path, &fs); err != nil {
		return errors.Mark(errors.Wrapf(err, "reading config file %s", path), ErrConfig)
	}
	setString(&s.Host, fs.Host)
	setString(&s.Token, fs.Token)
	setString(&s.Username, fs.Username)
	setString(&s.Password, fs.Password)
	setString(&s.Partition, fs.Partition)
	setString(&s.LoginProvider, fs.LoginProvider)
	if fs.VerifyTLS != nil {
		s.VerifyTLS = *fs.VerifyTLS
	}
	if fs.Timeout != nil {
		d, err := time.ParseDuration(*fs.Timeout)
		if err != nil {
			return configErrorf("invalid timeout %q in %s: %v", *fs.Timeout, path, err)
		}
		s.Timeout = d
	}
	return nil
}

func (s *Settings) mergeEnv(lookup func(string) (string, bool)) error {
	env := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	env(EnvHost, &s.Host)
	env(EnvToken, &s.Token)
	env(EnvUsername, &s.Username)
	env(EnvPassword, &s.Password)
	env(EnvPartition, &s.Partition)
	env(EnvLoginProvider, &s.LoginProvider)
	if v, ok := lookup(EnvVerifySSL); ok && v != "" {
		s.VerifyTLS = parseVerify(v)
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return configErrorf("invalid %s %q: %v", EnvTimeout, v, err)
		}
		s.Timeout = d
	}
	return nil
}

// Validate checks that a host is set and that either a token or a full
// username/password pair is present.
func (s *Settings) Validate() error {
	var missing []string
	if s.Host == "" {
		missing = append(missing, EnvHost)
	}
	if s.Token == "" && (s.Username == "" || s.Password == "") {
		missing = append(missing, EnvToken+" or "+EnvUsername+"/"+EnvPassword)
	}
	if len(missing) > 0 {
		return configErrorf("missing required BIG-IP settings: %s", strings.Join(missing, ", "))
	}
	if err := validate.Struct(s); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid BIG-IP settings"), ErrConfig)
	}
	return nil
}

// CanLogin reports whether credentials for a token login are configured.
func (s *Settings) CanLogin() bool {
	return s.Username != "" && s.Password != ""
}

// AuthMode names the token source used first, for diagnostics.
func (s *Settings) AuthMode() string {
	switch {
	case s.Token != "" && s.CanLogin():
		return "token+credentials"
	case s.Token != "":
		return "token"
	default:
		return "credentials"
	}
}

func parseVerify(v string) bool {
	switch v {
	case "0", "false", "False":
		return false
	}
	return true
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
