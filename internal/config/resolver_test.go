package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/vncard-cli/internal/config"
)

func TestApplyEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "count: 3\ntemplate: file.png\nlog:\n  level: debug\n")
	t.Setenv("VNCARD_COUNT", "9")
	t.Setenv("VNCARD_SEED", "123")
	t.Setenv("VNCARD_PAD", "true")
	t.Setenv("VNCARD_S3_BUCKET", "cards")
	t.Setenv("VNCARD_FONTS", "a.ttf,b.ttf")

	c, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, c.ApplyEnv())

	assert.Equal(t, 9, c.Count)
	assert.Equal(t, "file.png", c.Template, "unset variables keep file values")
	assert.Equal(t, "debug", c.Log.Level)
	require.NotNil(t, c.Seed)
	assert.EqualValues(t, 123, *c.Seed)
	assert.True(t, c.Pad)
	assert.Equal(t, "cards", c.Output.S3.Bucket)
	assert.Equal(t, []string{"a.ttf", "b.ttf"}, c.Render.Fonts)
}

func TestApplyEnvS3Credentials(t *testing.T) {
	path := writeConfig(t, "output:\n  s3:\n    bucket: cards\n    prefix: run\n")
	t.Setenv("VNCARD_S3_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("VNCARD_S3_SECRET_ACCESS_KEY", "secret")

	c, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, c.ApplyEnv())
	require.NoError(t, c.Validate())

	sink := c.Output.S3.SinkConfig()
	assert.Equal(t, "cards", sink.Bucket)
	assert.Equal(t, "run", sink.Prefix)
	assert.Equal(t, "AKIDEXAMPLE", sink.AccessKeyID)
	assert.Equal(t, "secret", sink.SecretAccessKey)

	c.Output.S3.SecretAccessKey = ""
	assert.ErrorContains(t, c.Validate(), "must be set together")
}

func TestApplyEnvGeminiKeyFallback(t *testing.T) {
	t.Setenv("VNCARD_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	c := config.Default()
	require.NoError(t, c.ApplyEnv())
	assert.Equal(t, "google-key", c.Sources.GeminiAPIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	c = config.Default()
	require.NoError(t, c.ApplyEnv())
	assert.Equal(t, "gemini-key", c.Sources.GeminiAPIKey)

	t.Setenv("VNCARD_GEMINI_API_KEY", "vncard-key")
	c = config.Default()
	require.NoError(t, c.ApplyEnv())
	assert.Equal(t, "vncard-key", c.Sources.GeminiAPIKey)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("VNCARD_COUNT", "many")
	c := config.Default()
	assert.Error(t, c.ApplyEnv())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VNCARD_TEST_DOTENV=from-file\nVNCARD_TEST_KEEP=from-file\n"), 0o644))
	t.Setenv("VNCARD_TEST_KEEP", "from-env")
	t.Setenv("VNCARD_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("VNCARD_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("VNCARD_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("VNCARD_TEST_KEEP"))
}

func TestResolve(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VNCARD_OUTPUT_DIR", "cards")

	c, err := config.Resolve(config.FileName, false)
	require.NoError(t, err)
	assert.Equal(t, "cards", c.Output.Dir)

	_, err = config.Resolve(config.FileName, true)
	assert.Error(t, err)
}
