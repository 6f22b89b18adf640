package db

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"eventgraph/models"
)

//go:embed data.json
var defaultDataset []byte

// FileSource reads a JSON dataset; an empty Path reads the embedded one.
type FileSource struct{ Path string }

func (s FileSource) Load(ctx context.Context) (models.Dataset, error) {
	raw := defaultDataset
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return models.Dataset{}, errors.Wrapf(err, "read %s", s.Path)
		}
		raw = b
	}
	return DecodeDataset(raw)
}

func (FileSource) Close() error { return nil }

// DecodeDataset rejects unknown fields.
func DecodeDataset(raw []byte) (models.Dataset, error) {
	var ds models.Dataset
	d := json.NewDecoder(bytes.NewReader(raw))
	d.DisallowUnknownFields()
	if err := d.Decode(&ds); err != nil {
		return models.Dataset{}, errors.Wrap(err, "decode dataset")
	}
	return ds, nil
}
