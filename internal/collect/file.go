package collect

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/fennecworks/dealscope/pkg/errors"
	"github.com/fennecworks/dealscope/pkg/record"
)

// FileSource reads raw records from a JSON or YAML batch file. The file
// holds either a top-level array of records or an object with a "startups"
// array, matching the export shapes the catalogue tools emit.
type FileSource struct {
	path string
}

// NewFileSource creates a collector for one batch file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Collector.
func (s *FileSource) Name() string {
	return "file:" + filepath.Base(s.path)
}

// Collect implements Collector.
func (s *FileSource) Collect(ctx context.Context) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &errors.CollectError{Source: s.Name(), Err: err}
	}

	batch, err := decodeBatch(data, filepath.Ext(s.path))
	if err != nil {
		return nil, &errors.CollectError{Source: s.Name(), Err: err}
	}
	return batch, nil
}

type batchEnvelope struct {
	Startups []record.Raw `json:"startups" yaml:"startups"`
}

func decodeBatch(data []byte, ext string) ([]record.Raw, error) {
	yamlFile := strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml")

	var batch []record.Raw
	var listErr error
	if yamlFile {
		listErr = yaml.Unmarshal(data, &batch)
	} else {
		listErr = json.Unmarshal(data, &batch)
	}
	if listErr == nil {
		return batch, nil
	}

	var envelope batchEnvelope
	var envErr error
	if yamlFile {
		envErr = yaml.Unmarshal(data, &envelope)
	} else {
		envErr = json.Unmarshal(data, &envelope)
	}
	if envErr == nil && envelope.Startups != nil {
		return envelope.Startups, nil
	}

	return nil, errors.Wrap(listErr, "decode batch")
}
