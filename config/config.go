package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LoadAppConfig reads the first config.yml found on the search path.
// A missing file is not an error; the returned config then carries the
// defaults.
func LoadAppConfig() (AppConfig, error) {
	cfg := AppConfig{}
	paths := []string{"config.yml", "/etc/transport-catalogue/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Serialization.File == "" {
		c.Serialization.File = DefaultSerializationFile
	}
}

// Validate checks a settings struct against its validate tags.
func Validate(settings any) error {
	return validate.Struct(settings)
}
