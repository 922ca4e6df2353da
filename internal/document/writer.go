package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/vacdoc/internal/background"
)

// Write writes a document to a YAML file
func Write(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads a document from a YAML file. Background fields missing from
// the file keep their default values.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := Document{Background: background.DefaultData()}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%s: unsupported document version %q", path, doc.Version)
	}

	return &doc, nil
}
