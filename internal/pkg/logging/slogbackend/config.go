package slogbackend

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/zaicro/pquyquy-logging/internal/pkg/apperrors"
	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug     = "debug"
	LevelInfo      = "info"
	LevelWarn      = "warn"
	LevelError     = "error"
	LevelNameFatal = "fatal"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// EnvConfigPath — переменная окружения с путём к YAML-конфигурации backend-а.
// Читается конструктором без параметров New().
const EnvConfigPath = "PQ_LOG_CONFIG"

// Значения по умолчанию для Config.
// Загрузка начинается с DefaultConfig(), поэтому env-default тегов у полей нет:
// cleanenv применяет их к любому нулевому полю и затирал бы явные
// `compress: false` или `maxBackups: 0` из файла.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/pquyquy.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config содержит настройки slog backend-а.
// Загружается из YAML-файла (PQ_LOG_CONFIG) и/или переменных окружения PQ_LOG_*.
type Config struct {
	// Format определяет формат вывода: "json" или "text".
	// По умолчанию: "text".
	Format string `yaml:"format" env:"PQ_LOG_FORMAT"`

	// Level определяет минимальный уровень логирования.
	// По умолчанию: "info".
	// Допустимые значения: "debug", "info", "warn", "error", "fatal".
	Level string `yaml:"level" env:"PQ_LOG_LEVEL"`

	// Output определяет куда выводить логи: "stderr" или "file".
	// По умолчанию: "stderr".
	Output string `yaml:"output" env:"PQ_LOG_OUTPUT"`

	// FilePath задаёт путь к файлу логов (при output="file").
	FilePath string `yaml:"filePath" env:"PQ_LOG_FILE_PATH"`

	// MaxSize задаёт максимальный размер файла в мегабайтах
	// перед ротацией. По умолчанию: 100 МБ.
	MaxSize int `yaml:"maxSize" env:"PQ_LOG_MAX_SIZE"`

	// MaxBackups задаёт количество backup файлов.
	// По умолчанию: 3.
	MaxBackups int `yaml:"maxBackups" env:"PQ_LOG_MAX_BACKUPS"`

	// MaxAge задаёт максимальный возраст backup файлов в днях.
	// По умолчанию: 7 дней.
	MaxAge int `yaml:"maxAge" env:"PQ_LOG_MAX_AGE"`

	// Compress определяет сжимать ли backup файлы в gzip.
	// TODO: bool с перезаписывает явный `compress: false` из YAML
	// при cleanenv.ReadConfig; нужен *bool или отдельный признак presence.
	Compress bool `yaml:"compress" env:"PQ_LOG_COMPRESS"`

	// Filter описывает, какие сообщения отбрасываются до записи.
	Filter FilterConfig `yaml:"filter"`
}

// FilterConfig — декларативная часть фильтра сообщений.
// Программный фильтр задаётся через WithFilter и объединяется с этим.
type FilterConfig struct {
	// RejectContaining — подстроки, при наличии которых сообщение отбрасывается
	// (без учёта регистра).
	RejectContaining []string `yaml:"rejectContaining" env:"PQ_LOG_FILTER_REJECT" env-separator:","`

	// RejectPattern — регулярное выражение; совпавшие сообщения отбрасываются.
	RejectPattern string `yaml:"rejectPattern" env:"PQ_LOG_FILTER_PATTERN"`
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate, "неизвестный уровень логирования", err)
	}
	if _, err := c.Filter.Build(); err != nil {
		return err
	}
	return nil
}

// Build собирает MessageFilter из конфигурации.
// Возвращает nil фильтр если ничего не задано.
func (f FilterConfig) Build() (logging.MessageFilter, error) {
	var re *regexp.Regexp
	if f.RejectPattern != "" {
		compiled, err := regexp.Compile(f.RejectPattern)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "некорректный rejectPattern", err)
		}
		re = compiled
	}
	return logging.AnyFilter(
		logging.RejectContaining(f.RejectContaining...),
		logging.RejectMatching(re),
	), nil
}

// LoadConfig загружает конфигурацию для конструктора без параметров:
// из YAML-файла, если задан PQ_LOG_CONFIG, иначе из переменных окружения.
// Переменные окружения PQ_LOG_* переопределяют значения из файла.
func LoadConfig() (Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadConfigFile(path)
	}

	cfg := DefaultConfig()
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось загрузить конфигурацию логирования из переменных окружения", err)
	}
	return cfg, nil
}

// LoadConfigFile читает YAML-конфигурацию backend-а, проверяет её по
// встроенной JSON Schema и применяет переопределения из окружения.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // путь задаётся оператором
	if err != nil {
		return Config{}, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать конфигурацию логирования", err)
	}
	if err := ValidateDocument(data); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, apperrors.NewAppError(apperrors.ErrConfigParse,
			"не удалось разобрать конфигурацию логирования", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configSchemaURL — адрес, под которым встроенная схема регистрируется в компиляторе.
const configSchemaURL = "https://pquyquy.local/schema/logging-config.schema.json"

//go:embed schema/config.schema.json
var configSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// configSchema компилирует встроенную JSON Schema один раз.
func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(configSchemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(configSchemaURL)
	})
	return schema, schemaErr
}

// ValidateDocument проверяет YAML-документ конфигурации по JSON Schema.
func ValidateDocument(data []byte) error {
	sch, err := configSchema()
	if err != nil {
		return fmt.Errorf("slogbackend: компиляция схемы конфигурации: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigParse, "конфигурация логирования не является валидным YAML", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// YAML → JSON → jsonschema-совместимое представление (json.Number для чисел).
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigParse, "конфигурация логирования не сериализуется в JSON", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigParse, "конфигурация логирования не сериализуется в JSON", err)
	}
	if err := sch.Validate(inst); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate, "конфигурация логирования не соответствует схеме", err)
	}
	return nil
}
