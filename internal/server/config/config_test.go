package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	if c.EndpointAddr != ":5000" {
		t.Fatalf("unexpected default address: %q", c.EndpointAddr)
	}
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		t.Fatalf("default secrets must not be empty")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		t.Fatalf("access and refresh secrets must differ")
	}
	if c.AccessTokenValidityDuration >= c.RefreshTokenValidityDuration {
		t.Fatalf("access token must be shorter-lived than refresh token")
	}
	if c.BCryptCost != 10 {
		t.Fatalf("unexpected default bcrypt cost: %d", c.BCryptCost)
	}
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ADDRESS", ":8081")
	t.Setenv("DATABASE_DSN", "postgres://u:p@h:5432/db")
	t.Setenv("ACCESS_TOKEN_SECRET", "envAccess")
	t.Setenv("REFRESH_TOKEN_SECRET", "envRefresh")
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "30m")
	t.Setenv("REFRESH_TOKEN_EXPIRES_IN", "48h")
	t.Setenv("BCRYPT_COST", "12")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	if c.EndpointAddr != ":8081" {
		t.Fatalf("ADDRESS not applied: %q", c.EndpointAddr)
	}
	if c.DatabaseDSN != "postgres://u:p@h:5432/db" {
		t.Fatalf("DATABASE_DSN not applied: %q", c.DatabaseDSN)
	}
	if c.AccessTokenSecret != "envAccess" || c.RefreshTokenSecret != "envRefresh" {
		t.Fatalf("secrets not applied: %q / %q", c.AccessTokenSecret, c.RefreshTokenSecret)
	}
	if c.AccessTokenValidityDuration != 30*time.Minute {
		t.Fatalf("ACCESS_TOKEN_EXPIRES_IN not applied: %v", c.AccessTokenValidityDuration)
	}
	if c.RefreshTokenValidityDuration != 48*time.Hour {
		t.Fatalf("REFRESH_TOKEN_EXPIRES_IN not applied: %v", c.RefreshTokenValidityDuration)
	}
	if c.BCryptCost != 12 {
		t.Fatalf("BCRYPT_COST not applied: %d", c.BCryptCost)
	}
}

func TestParseEnv_KeepsDefaultsWhenUnset(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	want := *c

	parseEnv(c)

	if c.EndpointAddr != want.EndpointAddr || c.DatabaseDSN != want.DatabaseDSN {
		t.Fatalf("defaults changed without env vars: %+v", c)
	}
}

func TestParseEnv_PanicsOnBadDuration(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "soon")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for malformed duration")
		}
	}()

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	body := `{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://json",
		"access_token_secret": "jsonAccess",
		"refresh_token_secret": "jsonRefresh",
		"access_token_validity_duration": "20m",
		"refresh_token_validity_duration": "72h",
		"bcrypt_cost": 11
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	oldArgs := os.Args
	os.Args = []string{"test", "-c", path}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	if c.EndpointAddr != ":9090" || c.DatabaseDSN != "postgres://json" {
		t.Fatalf("json overlay not applied: %+v", c)
	}
	if c.AccessTokenValidityDuration != 20*time.Minute {
		t.Fatalf("access duration not applied: %v", c.AccessTokenValidityDuration)
	}
	if c.RefreshTokenValidityDuration != 72*time.Hour {
		t.Fatalf("refresh duration not applied: %v", c.RefreshTokenValidityDuration)
	}
	if c.BCryptCost != 11 {
		t.Fatalf("bcrypt cost not applied: %d", c.BCryptCost)
	}
}

func TestLoadConfig_EnvDurationsSurviveFlaglessStart(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "90s")
	t.Setenv("REFRESH_TOKEN_EXPIRES_IN", "45s")

	c := LoadConfig()

	if c.AccessTokenValidityDuration != 90*time.Second {
		t.Fatalf("access validity clobbered by flag layer: %v", c.AccessTokenValidityDuration)
	}
	if c.RefreshTokenValidityDuration != 45*time.Second {
		t.Fatalf("refresh validity clobbered by flag layer: %v", c.RefreshTokenValidityDuration)
	}
}

func TestLoadConfig_DurationFlagsOverrideEnv(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test", "-t", "30", "-r", "120"}
	defer func() { os.Args = oldArgs }()

	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "90s")
	t.Setenv("REFRESH_TOKEN_EXPIRES_IN", "45s")

	c := LoadConfig()

	if c.AccessTokenValidityDuration != 30*time.Minute {
		t.Fatalf("-t flag not applied: %v", c.AccessTokenValidityDuration)
	}
	if c.RefreshTokenValidityDuration != 120*time.Minute {
		t.Fatalf("-r flag not applied: %v", c.RefreshTokenValidityDuration)
	}
}

func TestParseFlags_KeepsDurationsWhenFlagsAbsent(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test", "-a", ":7070"}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	c.AccessTokenValidityDuration = 45 * time.Second
	c.RefreshTokenValidityDuration = 90 * time.Second

	parseFlags(c)

	if c.EndpointAddr != ":7070" {
		t.Fatalf("-a flag not applied: %q", c.EndpointAddr)
	}
	if c.AccessTokenValidityDuration != 45*time.Second {
		t.Fatalf("access validity changed without -t: %v", c.AccessTokenValidityDuration)
	}
	if c.RefreshTokenValidityDuration != 90*time.Second {
		t.Fatalf("refresh validity changed without -r: %v", c.RefreshTokenValidityDuration)
	}
}

func TestParseJson_NoFileFlag(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	want := *c

	parseJson(c)

	if *c != want {
		t.Fatalf("config changed without a json file: %+v", c)
	}
}
