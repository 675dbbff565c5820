package conformance

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the directory holding the YAML fixtures
const TestPath = "testdata"

// LoadedTest represents a test with its source file
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests loads every test case from the fixture directory
func LoadAllTests() ([]LoadedTest, error) {
	entries, err := os.ReadDir(TestPath)
	if err != nil {
		return nil, err
	}

	var loaded []LoadedTest
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		suite, err := loadTestFile(filepath.Join(TestPath, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, test := range suite.Tests {
			loaded = append(loaded, LoadedTest{
				File:  entry.Name(),
				Suite: suite,
				Test:  test,
			})
		}
	}
	return loaded, nil
}

// loadTestFile parses a single YAML fixture file
func loadTestFile(path string) (TestSuite, error) {
	var suite TestSuite
	data, err := os.ReadFile(path)
	if err != nil {
		return suite, err
	}
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return suite, err
	}
	return suite, nil
}
