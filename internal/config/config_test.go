package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/config"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) write(body string) string {
	path := filepath.Join(s.dir, "transporter.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.Equal("cobblemon", cfg.OutputDir)
	s.Equal(30, cfg.Grid.Boxes)
	s.Equal(30, cfg.Grid.SlotsPerBox)
	s.Equal(config.CacheFile, cfg.Cache.Backend)
	s.Equal(2*time.Minute, cfg.Converter.Timeout)
	s.Equal(filepath.Join("cache", "usernames.db"), cfg.Cache.SQLitePath)

	level, err := cfg.Level()
	s.Require().NoError(err)
	s.Equal(slog.LevelInfo, level)
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := s.write(`
log_level: debug
output_dir: records
grid:
  boxes: 10
cache:
  backend: redis
  redis_addr: localhost:6379
converter:
  to_native: /opt/JsonToPB8
  timeout: 30s
mojang:
  retry_delay: 250ms
`)

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal("records", cfg.OutputDir)
	s.Equal(10, cfg.Grid.Boxes)
	s.Equal(30, cfg.Grid.SlotsPerBox)
	s.Equal("localhost:6379", cfg.Cache.RedisAddr)
	s.Equal("/opt/JsonToPB8", cfg.Converter.ToNative)
	s.Equal(30*time.Second, cfg.Converter.Timeout)
	s.Equal(250*time.Millisecond, cfg.Mojang.RetryDelay)

	level, _ := cfg.Level()
	s.Equal(slog.LevelDebug, level)
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "cache:\n  backend: memcached\n"},
		{name: "redis without address", body: "cache:\n  backend: redis\n"},
		{name: "bad level", body: "log_level: loud\n"},
		{name: "negative grid", body: "grid:\n  boxes: -1\n"},
		{name: "malformed yaml", body: "grid: [\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.Load(s.write(tc.body))
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.dir, "nope.yaml"))
	s.True(errors.IsNotFound(err))
}
