// Package export writes a mapper's table and every derived mapping to disk
// in the layout used for static hosting:
//
//	<dir>/<variant>/mappings.csv
//	<dir>/<variant>/<mapping name>.json
package export

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/oarkflow/errors"
	"github.com/sirupsen/logrus"

	"github.com/oarkflow/cikmapper/mapper"
	"github.com/oarkflow/cikmapper/mapping"
	"github.com/oarkflow/cikmapper/store"
	"github.com/oarkflow/cikmapper/utils"
)

// CSVName is the file the table is written to
const CSVName = "mappings.csv"

// Options controls where and how artifacts are written.
type Options struct {
	Dir string
	// Gzip writes a .gz sidecar next to every file.
	Gzip bool
	// Store receives a snapshot of the table when set.
	Store *store.Store
}

// MarshalMapping encodes a derived mapping with sorted keys, sets as sorted
// arrays and without HTML escaping.
func MarshalMapping(m any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(mapping.Encodable(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VariantDir returns the directory holding a variant's artifacts
func VariantDir(dir string, m mapper.Mapper) string {
	return filepath.Join(dir, string(m.Variant()))
}

// Write exports m and returns the paths written, sidecars excluded.
func Write(m mapper.Mapper, opts Options) ([]string, error) {
	dir := VariantDir(opts.Dir, m)
	var files []string

	var csv bytes.Buffer
	if err := m.WriteCSV(&csv); err != nil {
		return files, err
	}
	path := filepath.Join(dir, CSVName)
	if err := utils.WriteFile(path, csv.Bytes(), opts.Gzip); err != nil {
		return files, errors.Wrap(err, "problem writing "+path, "")
	}
	files = append(files, path)
	logrus.Infof("[%s] %s", m.Variant(), CSVName)

	for _, d := range m.Definitions() {
		v, err := m.Mapping(d.Name)
		if err != nil {
			return files, err
		}
		data, err := MarshalMapping(v)
		if err != nil {
			return files, fmt.Errorf("encoding %s: %w", d.Name, err)
		}
		path := filepath.Join(dir, d.Name+".json")
		if err := utils.WriteFile(path, data, opts.Gzip); err != nil {
			return files, errors.Wrap(err, "problem writing "+path, "")
		}
		files = append(files, path)
		logrus.Infof("[%s] %s.json", m.Variant(), d.Name)
	}

	if opts.Store != nil {
		if err := opts.Store.Save(m.Variant(), m.Table()); err != nil {
			return files, err
		}
	}
	return files, nil
}

// All exports every mapper in turn, stopping at the first failure.
func All(opts Options, mappers ...mapper.Mapper) ([]string, error) {
	var files []string
	for _, m := range mappers {
		written, err := Write(m, opts)
		files = append(files, written...)
		if err != nil {
			return files, err
		}
	}
	return files, nil
}
