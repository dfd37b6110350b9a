package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/agrilink/internal/offline"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "agrilink-gh-v1", c.CacheVersion)
	assert.Equal(t, []string(offline.DefaultManifest()), c.Assets)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	assert.False(t, c.UseS3())
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"shell", "-a", ":9999", "-b", "assets"}

	c := LoadConfig()

	assert.Equal(t, ":9999", c.ListenAddr)
	assert.True(t, c.UseS3())
	assert.Equal(t, "offline.db", c.CacheDBPath)
}
