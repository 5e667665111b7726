package bigip

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvHost, EnvToken, EnvUsername, EnvPassword, EnvPartition, EnvVerifySSL, EnvLoginProvider, EnvTimeout} {
		t.Setenv(k, "")
	}
}

func TestLoadSettings_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "https://bigip.example.com/")
	t.Setenv(EnvUsername, "admin")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvPartition, "Tenant")
	t.Setenv(EnvVerifySSL, "false")
	t.Setenv(EnvTimeout, "5s")

	s, err := SettingsFromEnv()
	require.NoError(t, err)
	require.Equal(t, "https://bigip.example.com", s.Host)
	require.Equal(t, "Tenant", s.Partition)
	require.False(t, s.VerifyTLS)
	require.Equal(t, 5*time.Second, s.Timeout)
	require.Equal(t, DefaultLoginProvider, s.LoginProvider)
	require.True(t, s.CanLogin())
	require.Equal(t, "credentials", s.AuthMode())
}

func TestLoadSettings_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bigip.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host = "https://file.example.com"
token = "file-token"
partition = "FromFile"
verify_tls = false
timeout = "10s"
`), 0o600))
	t.Setenv(EnvPartition, "FromEnv")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "https://file.example.com", s.Host)
	require.Equal(t, "file-token", s.Token)
	require.Equal(t, "FromEnv", s.Partition)
	require.False(t, s.VerifyTLS)
	require.Equal(t, 10*time.Second, s.Timeout)
	require.Equal(t, "token", s.AuthMode())
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{name: "missing host", env: map[string]string{EnvToken: "t"}, message: EnvHost},
		{name: "missing credentials", env: map[string]string{EnvHost: "https://h"}, message: EnvToken},
		{name: "username without password", env: map[string]string{EnvHost: "https://h", EnvUsername: "admin"}, message: EnvPassword},
		{name: "bad timeout", env: map[string]string{EnvHost: "https://h", EnvToken: "t", EnvTimeout: "soon"}, message: EnvTimeout},
		{name: "bad host", env: map[string]string{EnvHost: "bigip", EnvToken: "t"}, message: "Host"},
		{name: "partition with slash", env: map[string]string{EnvHost: "https://h", EnvToken: "t", EnvPartition: "a/b"}, message: "Partition"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := SettingsFromEnv()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfig))
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoadSettings_TokenWithPartialCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "https://h")
	t.Setenv(EnvToken, "t")
	t.Setenv(EnvUsername, "admin")

	s, err := SettingsFromEnv()
	require.NoError(t, err)
	require.False(t, s.CanLogin())
	require.Equal(t, "token", s.AuthMode())
}

func TestLoadSettings_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	require.True(t, errors.Is(err, ErrConfig))
}

func TestParseVerify(t *testing.T) {
	for _, v := range []string{"0", "false", "False"} {
		require.False(t, parseVerify(v), v)
	}
	for _, v := range []string{"1", "true", "yes", "FALSE-ish"} {
		require.True(t, parseVerify(v), v)
	}
}
