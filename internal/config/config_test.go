package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/viper"

	"github.com/ghettovoice/gourl/internal/config"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v, want nil", err)
	}
	return p
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := config.Dir(), filepath.Join("/custom/config", "urlparse"); got != want {
		t.Errorf("config.Dir() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	if got, want := config.Dir(), filepath.Join(home, ".config", "urlparse"); got != want {
		t.Errorf("config.Dir() = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	defaults := config.Config{
		Log:  config.LogConfig{Level: "info", Format: "console"},
		Bulk: config.BulkConfig{Workers: runtime.GOMAXPROCS(0), BatchSize: 4096},
	}

	cases := []struct {
		name    string
		file    string
		env     map[string]string
		want    *config.Config
		wantErr error
	}{
		{"defaults", "", nil, &defaults, nil},
		{
			"file",
			writeFile(t, "urlparse.toml", "[log]\nlevel = \"debug\"\nformat = \"json\"\n\n[idna]\nstrict = true\n\n[bulk]\nworkers = 3\n"),
			nil,
			&config.Config{
				Log:  config.LogConfig{Level: "debug", Format: "json"},
				IDNA: config.IDNAConfig{Strict: true},
				Bulk: config.BulkConfig{Workers: 3, BatchSize: 4096},
			},
			nil,
		},
		{
			"env over file",
			writeFile(t, "urlparse.toml", "[bulk]\nworkers = 3\n"),
			map[string]string{"URLPARSE_BULK_WORKERS": "7", "URLPARSE_LOG_FORMAT": "dev"},
			&config.Config{
				Log:  config.LogConfig{Level: "info", Format: "dev"},
				Bulk: config.BulkConfig{Workers: 7, BatchSize: 4096},
			},
			nil,
		},
		{"missing explicit file", filepath.Join(t.TempDir(), "nope.toml"), nil, nil, config.ErrInvalidConfig},
		{"bad toml", writeFile(t, "urlparse.toml", "[log\n"), nil, nil, config.ErrInvalidConfig},
		{
			"bad values",
			writeFile(t, "urlparse.toml", "[log]\nlevel = \"loud\"\nformat = \"xml\"\n\n[bulk]\nworkers = 0\n"),
			nil,
			nil,
			config.ErrInvalidConfig,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// t.Setenv forbids t.Parallel
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			for k, v := range c.env {
				t.Setenv(k, v)
			}

			got, err := config.Load(viper.New(), c.file)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("config.Load() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("config.Load() mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Log:  config.LogConfig{Level: "loud", Format: "xml"},
		Bulk: config.BulkConfig{Workers: 0, BatchSize: 0},
	}
	err := cfg.Validate()
	if diff := cmp.Diff(err, error(config.ErrInvalidConfig), cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("cfg.Validate() error = %v, want %v", err, config.ErrInvalidConfig)
	}
	for _, key := range []string{"log.level", "log.format", "bulk.workers", "bulk.batch_size"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("cfg.Validate() error = %q, want mention of %s", err, key)
		}
	}
}
