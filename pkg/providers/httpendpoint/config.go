package httpendpoint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/fallback-kit/pkg/chain"
)

// endpointsFile is the on-disk shape of an endpoint list.
type endpointsFile struct {
	Endpoints []Config `yaml:"endpoints"`
}

// LoadProviders reads a YAML file describing a list of endpoints and builds a
// provider for each, in file order.
func LoadProviders(path string) ([]chain.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file: %w", err)
	}

	var file endpointsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints file: %w", err)
	}

	providers := make([]chain.Provider, 0, len(file.Endpoints))
	for _, cfg := range file.Endpoints {
		p, err := New(cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
