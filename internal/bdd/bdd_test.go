package bdd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
)

// TestFeatures discovers features/*.feature and runs each through godog,
// mirroring the teacher's internal/bdd.TestFeatures discovery loop but
// against this module's own features directory and with no server to start.
func TestFeatures(t *testing.T) {
	featuresDir := filepath.Join("..", "..", "features")
	featureFiles, err := filepath.Glob(filepath.Join(featuresDir, "*.feature"))
	if err != nil {
		t.Fatal(err)
	}
	if len(featureFiles) == 0 {
		t.Skipf("no feature files found in %s", featuresDir)
	}

	for _, featurePath := range featureFiles {
		name := filepath.Base(featurePath)
		t.Run(name, func(t *testing.T) {
			opts := godog.Options{
				Output:      colors.Colored(os.Stdout),
				Format:      "progress",
				Paths:       []string{featurePath},
				Randomize:   time.Now().UTC().UnixNano(),
				Concurrency: 1,
				TestingT:    t,
			}

			status := godog.TestSuite{
				Name:                name,
				Options:             &opts,
				ScenarioInitializer: InitializeScenario,
			}.Run()
			if status != 0 {
				t.Fail()
			}
		})
	}
}
