package main

import (
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseGlobal(t *testing.T, args ...string) *globalOptions {
	t.Helper()
	var o globalOptions
	_, err := flags.NewParser(&o, flags.IgnoreUnknown).ParseArgs(args)
	require.NoError(t, err)
	return &o
}

func TestSiteConfigDefaults(t *testing.T) {
	cfg := parseGlobal(t).siteConfig()

	assert.Equal(t, "uk", cfg.Lang)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.Equal(t, "dir", cfg.Source)
}

func TestSiteConfigFromFlags(t *testing.T) {
	cfg := parseGlobal(t, "--site-lang", "en", "--post-cache-ttl", "30s").siteConfig()

	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 30*time.Second, cfg.PostCacheTTL)
}

func TestZeroCacheTTLDisables(t *testing.T) {
	cfg := parseGlobal(t, "--post-cache-ttl", "0s").siteConfig()
	assert.Negative(t, cfg.PostCacheTTL)

	assert.Equal(t, time.Duration(-1), cacheTTL(0))
	assert.Equal(t, time.Minute, cacheTTL(time.Minute))
}
