// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a vector file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension. A trailing .lz4
// extension is ignored; paths without an extension (e.g., "-" for stdin) are JSON.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".lz4" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	switch ext {
	case "", ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Set is a collection of vectors keyed by vector id
type Set map[string]*vector.Vector

// IDs returns the ids in the set in sorted order
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the vector with the given id; the id may include the `v` marker
func (s Set) Get(id string) (*vector.Vector, error) {
	if v, ok := s[id]; ok {
		return v, nil
	}

	id = strings.TrimPrefix(strings.ToLower(id), "v")
	if v, ok := s[id]; ok {
		return v, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrVectorNotFound, id)
}

func unmarshal(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return raw, nil
}

func marshal(val any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(val, "", "  ")
	case FormatYAML:
		return yaml.Marshal(val)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeSet parses a document mapping vector ids to lists of points. A document that
// is a bare list of points is returned as a set with the single id "1".
func DecodeSet(data []byte, format Format) (Set, error) {
	raw, err := unmarshal(data, format)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]any)
	switch doc := raw.(type) {
	case nil:
	case []any:
		entries["1"] = doc
	case map[string]any:
		entries = doc
	case map[any]any:
		for k, val := range doc {
			entries[cast.ToString(k)] = val
		}
	default:
		return nil, fmt.Errorf("%w: expected a map of vectors, got %T", ErrUnsupportedFormat, raw)
	}

	set := make(Set, len(entries))
	for id, entry := range entries {
		v, err := toVector(entry)
		if err != nil {
			return nil, fmt.Errorf("vector %s: %w", id, err)
		}
		set[strings.TrimPrefix(strings.ToLower(id), "v")] = v
	}

	return set, nil
}

// DecodeVector parses a document holding a single vector, either as a bare list of
// points or as a set with exactly one entry
func DecodeVector(data []byte, format Format) (*vector.Vector, error) {
	set, err := DecodeSet(data, format)
	if err != nil {
		return nil, err
	}

	switch len(set) {
	case 0:
		return vector.New(), nil
	case 1:
		for _, v := range set {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrAmbiguousVector, strings.Join(set.IDs(), ", "))
}

// EncodeVector serializes v as a list of points
func EncodeVector(v *vector.Vector, format Format) ([]byte, error) {
	return marshal(v.Records(), format)
}

// EncodeSet serializes every vector in the set keyed by id
func EncodeSet(s Set, format Format) ([]byte, error) {
	doc := make(map[string][]map[string]any, len(s))
	for id, v := range s {
		doc[id] = v.Records()
	}
	return marshal(doc, format)
}

func toVector(entry any) (*vector.Vector, error) {
	items, ok := entry.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of points, got %T", ErrUnsupportedFormat, entry)
	}

	records := make([]map[string]any, 0, len(items))
	for idx, item := range items {
		switch record := item.(type) {
		case map[string]any:
			records = append(records, record)
		case map[any]any:
			converted := make(map[string]any, len(record))
			for k, val := range record {
				converted[cast.ToString(k)] = val
			}
			records = append(records, converted)
		default:
			return nil, fmt.Errorf("%w: point %d is a %T", ErrUnsupportedFormat, idx, item)
		}
	}

	return vector.FromRecords(records)
}
