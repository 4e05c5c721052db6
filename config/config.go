package config

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/pkg/provider"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const defaultUploadLimit = 32 << 20

type Config struct {
	Address string

	Origins     []string
	UploadLimit int64

	Transcribe TranscribeConfig
	Form       FormConfig

	completer   map[string]provider.Completer
	transcriber map[string]provider.Transcriber
}

// TranscribeConfig selects the speech model behind /transcribe.
type TranscribeConfig struct {
	Model    string
	Language string
}

// FormConfig selects the models and schema behind /fill_form and /process_audio.
type FormConfig struct {
	Model       string
	Transcriber string

	Temperature *float32
	Structured  bool

	Schema form.Schema
}

// Load parses the config file at path, or falls back to Default when it does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default()
	}

	return Parse(path)
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: file.Address,

		Origins:     file.CORS.Origins,
		UploadLimit: file.Limits.Upload,

		Transcribe: TranscribeConfig{
			Model:    file.Transcribe.Model,
			Language: file.Transcribe.Language,
		},

		Form: FormConfig{
			Model:       file.Form.Model,
			Transcriber: file.Form.Transcriber,

			Temperature: file.Form.Temperature,
			Structured:  file.Form.Structured,

			Schema: file.Form.Fields,
		},
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := validateSchema(c.Form.Schema); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	Limits struct {
		Upload int64 `yaml:"upload"`
	} `yaml:"limits"`

	Providers []providerConfig `yaml:"providers"`

	Transcribe transcribeConfig `yaml:"transcribe"`
	Form       formConfig       `yaml:"form"`
}

type transcribeConfig struct {
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type formConfig struct {
	Model       string `yaml:"model"`
	Transcriber string `yaml:"transcriber"`

	Temperature *float32 `yaml:"temperature"`
	Structured  bool     `yaml:"structured"`

	Fields form.Schema `yaml:"fields"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) applyDefaults() {
	if val := os.Getenv("ADDRESS"); val != "" {
		cfg.Address = val
	} else if val := os.Getenv("PORT"); val != "" && cfg.Address == "" {
		cfg.Address = ":" + val
	}

	if len(cfg.Origins) == 0 {
		cfg.Origins = []string{"*"}
	}

	if cfg.UploadLimit <= 0 {
		cfg.UploadLimit = defaultUploadLimit
	}

	if len(cfg.Form.Schema) == 0 {
		cfg.Form.Schema = form.DefaultSchema()
	}
}

func splitList(val string) []string {
	var result []string

	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
