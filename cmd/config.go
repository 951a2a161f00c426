package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultsConfig supplies fallback CLI flag values read from a YAML file
// (the `--defaults` flag), the same read-file/unmarshal/use-as-fallback
// idiom as the teacher's GetDefaultConfig/GetCoefficients.
type DefaultsConfig struct {
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`
}

// LoadDefaultsConfig reads and parses a defaults YAML file. Matches the
// teacher's panic-on-read/parse-failure behavior: a malformed or missing
// defaults file is an operator configuration error, not a recoverable one.
func LoadDefaultsConfig(path string) DefaultsConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var cfg DefaultsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}
	return cfg
}
