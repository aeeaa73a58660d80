package configs

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load builds configuration from defaults, an optional yaml file and
// environment variables, in that order of increasing precedence.
//
// args:
//   - filepath: path to a config file. Skipped when empty.
//
// returns *Config, error:
//
//	When loading succeeds, returns `(*Config, nil)`.
//	Otherwise, returns `(nil, error)`.
//	Misconfigurations found while sealing cause panic. See `ConfigMarshall.TrySeal`.
func Load(filepath string) (*Config, error) {
	m := Default()

	if filepath != "" {
		content, err := os.ReadFile(filepath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(content, m); err != nil {
			return nil, err
		}
	}

	m.OverlayEnv(os.LookupEnv)

	return m.TrySeal(), nil
}
