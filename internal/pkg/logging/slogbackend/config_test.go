package slogbackend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestDefaultConfig проверяет значения по умолчанию.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Equal(t, DefaultFilePath, cfg.FilePath)
	assert.Equal(t, DefaultMaxSize, cfg.MaxSize)
	assert.NoError(t, cfg.Validate())
}

// TestLoadConfigFile_Valid проверяет загрузку корректного YAML.
func TestLoadConfigFile_Valid(t *testing.T) {
	path := writeConfigFile(t, `
format: json
level: debug
output: file
filePath: /tmp/pquyquy/app.log
maxSize: 10
maxBackups: 1
maxAge: 2
filter:
  rejectContaining: [SECRET, password]
  rejectPattern: "^healthcheck"
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, OutputFile, cfg.Output)
	assert.Equal(t, "/tmp/pquyquy/app.log", cfg.FilePath)
	assert.Equal(t, 10, cfg.MaxSize)
	assert.Equal(t, []string{"SECRET", "password"}, cfg.Filter.RejectContaining)

	filter, err := cfg.Filter.Build()
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.True(t, filter("token=secret"))
	assert.True(t, filter("healthcheck ok"))
	assert.False(t, filter("hello"))
}

// TestLoadConfigFile_EnvOverrides проверяет приоритет переменных окружения над файлом.
func TestLoadConfigFile_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "level: debug\nformat: text\n")
	t.Setenv("PQ_LOG_LEVEL", "error")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, LevelError, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
}

// TestLoadConfigFile_ExplicitZeroValues проверяет, что явные false и 0 из файла
// не заменяются значениями по умолчанию.
func TestLoadConfigFile_ExplicitZeroValues(t *testing.T) {
	path := writeConfigFile(t, "compress: false\nmaxBackups: 0\nmaxAge: 0\n")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.Compress)
	assert.Equal(t, 0, cfg.MaxBackups)
	assert.Equal(t, 0, cfg.MaxAge)
	assert.Equal(t, DefaultMaxSize, cfg.MaxSize, "незаданное поле получает значение по умолчанию")
	assert.Equal(t, DefaultLevel, cfg.Level)
}

// TestLoadConfig_EnvExplicitFalse проверяет явное PQ_LOG_COMPRESS=false.
func TestLoadConfig_EnvExplicitFalse(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("PQ_LOG_COMPRESS", "false")
	t.Setenv("PQ_LOG_MAX_BACKUPS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Compress)
	assert.Equal(t, 0, cfg.MaxBackups)
	assert.Equal(t, DefaultMaxAge, cfg.MaxAge)
}

// TestLoadConfigFile_SchemaErrors проверяет отклонение документов, не соответствующих схеме.
func TestLoadConfigFile_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown level", content: "level: loud\n"},
		{name: "unknown format", content: "format: xml\n"},
		{name: "unknown key", content: "colour: true\n"},
		{name: "file output without path", content: "output: file\n"},
		{name: "zero max size", content: "maxSize: 0\n"},
		{name: "negative max age", content: "maxAge: -1\n"},
		{name: "filter is not an object", content: "filter: [a, b]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrConfigValidate, apperrors.CodeOf(err))
		})
	}
}

// TestLoadConfigFile_InvalidYAML проверяет ошибку разбора.
func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	_, err := LoadConfigFile(writeConfigFile(t, "level: [unterminated\n"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfigParse, apperrors.CodeOf(err))
}

// TestLoadConfigFile_Missing проверяет ошибку чтения файла.
func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfigLoad, apperrors.CodeOf(err))
}

// TestLoadConfigFile_InvalidPattern проверяет, что некорректный regexp ловит Validate.
func TestLoadConfigFile_InvalidPattern(t *testing.T) {
	_, err := LoadConfigFile(writeConfigFile(t, "filter:\n  rejectPattern: \"(\"\n"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConfigValidate, apperrors.CodeOf(err))
}

// TestValidateDocument_Empty проверяет, что пустой документ допустим.
func TestValidateDocument_Empty(t *testing.T) {
	assert.NoError(t, ValidateDocument(nil))
	assert.NoError(t, ValidateDocument([]byte("# only a comment\n")))
}

// TestLoadConfig_UsesFileFromEnv проверяет выбор файла через PQ_LOG_CONFIG.
func TestLoadConfig_UsesFileFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfigFile(t, "level: warn\n"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format, "незаданные поля получают значения по умолчанию")
}

// TestLoadConfig_FromEnvOnly проверяет загрузку только из окружения.
func TestLoadConfig_FromEnvOnly(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("PQ_LOG_OUTPUT", OutputFile)
	t.Setenv("PQ_LOG_FILTER_REJECT", "SECRET,token")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputFile, cfg.Output)
	assert.Equal(t, DefaultFilePath, cfg.FilePath)
	assert.Equal(t, []string{"SECRET", "token"}, cfg.Filter.RejectContaining)
}
