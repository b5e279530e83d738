package beacon

import (
	"fmt"

	registrybeacon "github.com/driftlock/timevault/internal/registry/beacon"
)

func init() {
	registrybeacon.Register("http", func(config map[string]string) (registrybeacon.Client, error) {
		baseURL, ok := config["base_url"]
		if !ok || baseURL == "" {
			return nil, fmt.Errorf("beacon http: base_url is required")
		}
		return NewHTTPClient(baseURL), nil
	})

	registrybeacon.Register("mock", func(config map[string]string) (registrybeacon.Client, error) {
		return NewMockClient()
	})

	registrybeacon.Register("fixture", func(config map[string]string) (registrybeacon.Client, error) {
		mock, err := NewMockClient()
		if err != nil {
			return nil, err
		}
		return NewFixtureClient(mock.chain), nil
	})
}
