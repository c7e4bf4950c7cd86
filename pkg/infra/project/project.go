package project

import (
	"bytes"
	"errors"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// ErrVersionNotFound is returned when the metadata file has no version key
var ErrVersionNotFound = errors.New("version not found in project metadata")

const (
	nameKey    = "name"
	versionKey = "version"
)

// LoadVersion reads the project version from the YAML metadata file at path
func LoadVersion(path string) (string, error) {
	doc, err := readDocument(path)
	if err != nil {
		return "", err
	}

	node, err := scalarNode(doc, versionKey)
	if err != nil {
		return "", goerr.Wrap(err, "failed to load version", goerr.V("path", path))
	}
	return node.Value, nil
}

// LoadName reads the project name from the metadata file. A missing name is not an error.
func LoadName(path string) (string, error) {
	doc, err := readDocument(path)
	if err != nil {
		return "", err
	}

	node, err := scalarNode(doc, nameKey)
	if err != nil {
		return "", nil
	}
	return node.Value, nil
}

// SaveVersion rewrites the version in the metadata file, leaving every other key intact
func SaveVersion(path, version string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	node, err := scalarNode(doc, versionKey)
	if err != nil {
		return goerr.Wrap(err, "failed to update version", goerr.V("path", path))
	}
	node.Value = version
	node.Tag = "!!str"
	node.Style = 0

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return goerr.Wrap(err, "failed to encode project metadata", goerr.V("path", path))
	}
	if err := enc.Close(); err != nil {
		return goerr.Wrap(err, "failed to encode project metadata", goerr.V("path", path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat project metadata", goerr.V("path", path))
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return goerr.Wrap(err, "failed to write project metadata", goerr.V("path", path))
	}
	return nil
}

func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read project metadata", goerr.V("path", path))
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse project metadata", goerr.V("path", path))
	}
	return &doc, nil
}

var errKeyNotFound = errors.New("key not found")

func scalarNode(doc *yaml.Node, key string) (*yaml.Node, error) {
	notFound := errKeyNotFound
	if key == versionKey {
		notFound = ErrVersionNotFound
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, goerr.Wrap(notFound, "project metadata is not a mapping")
	}

	m := doc.Content[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key && m.Content[i+1].Kind == yaml.ScalarNode {
			return m.Content[i+1], nil
		}
	}
	return nil, goerr.Wrap(notFound, "no such key", goerr.V("key", key))
}
