package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "trailclass", cfg.Database.Name)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "Asia/Riyadh", cfg.Imports.Timezone)
	assert.False(t, cfg.Imports.ScheduleAtomic)
	assert.Equal(t, int64(10*1024*1024), cfg.Imports.MaxFileSizeBytes)
	assert.Equal(t, "http://localhost:3000", cfg.Exports.ReportBaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.Share.TTL)
	assert.Equal(t, cfg.JWT.Secret, cfg.Share.Secret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_CACHE", "true")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("IMPORT_SCHEDULE_ATOMIC", "true")
	t.Setenv("IMPORT_MAX_FILE_SIZE", "0")
	t.Setenv("REPORT_BASE_URL", "https://reports.example/")
	t.Setenv("SHARE_LINK_SECRET", "share")
	t.Setenv("SHARE_LINK_TTL", "garbage")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Imports.ScheduleAtomic)
	assert.Equal(t, int64(10*1024*1024), cfg.Imports.MaxFileSizeBytes)
	assert.Equal(t, "https://reports.example", cfg.Exports.ReportBaseURL)
	assert.Equal(t, "share", cfg.Share.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.Share.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Mars/Olympus"))
}
