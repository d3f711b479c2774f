package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitConfig ensures defaults and validation of the app configuration.
func TestInitConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "127.0.0.1", Port: "8080"},
		}
	}

	t.Run("should pass: backend defaults to memory", func(t *testing.T) {
		config := base()
		require.NoError(t, InitConfig(config, "abc123", "v1.0.0", "2023-07-02"))
		assert.Equal(t, MemoryBackend, config.Storage.Backend)
		assert.Equal(t, "abc123", config.GitCommit)
		assert.Equal(t, "v1.0.0", config.GitTag)
		assert.Equal(t, 10, config.LogMaxSize)
	})

	t.Run("should fail: missing server address", func(t *testing.T) {
		config := &Config{}
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should fail: unknown storage backend", func(t *testing.T) {
		config := base()
		config.Storage.Backend = "cassandra"
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should fail: redis backend without address", func(t *testing.T) {
		config := base()
		config.Storage.Backend = RedisBackend
		assert.Error(t, InitConfig(config, "", "", ""))
	})

	t.Run("should pass: bolt backend with file and bucket", func(t *testing.T) {
		config := base()
		config.Storage.Backend = BoltBackend
		config.BoltDB = BoltDBConfig{FilePath: "/tmp/books.db", BucketName: "books"}
		assert.NoError(t, InitConfig(config, "", "", ""))
	})
}
