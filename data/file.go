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
	"io"
	"os"
	"strings"

	"github.com/penny-vault/pv-vector/common"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
)

// Stdio is the path that reads from stdin or writes to stdout
const Stdio = "-"

// LoadSet reads a vector set from path. Files compressed with lz4 are detected by
// their frame header and decompressed transparently.
func LoadSet(path string) (Set, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSet(data, format)
}

// LoadVector reads a single vector from path
func LoadVector(path string) (*vector.Vector, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeVector(data, format)
}

// SaveVector writes v to path in the format chosen by its extension. Paths ending
// in .lz4 are compressed.
func SaveVector(path string, v *vector.Vector) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := EncodeVector(v, format)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

// SaveSet writes every vector of s to path
func SaveSet(path string, s Set) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := EncodeSet(s, format)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

func readFile(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}

	var data []byte
	if path == Stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not read vector file")
		return nil, "", err
	}

	if common.IsCompressed(data) {
		data, err = common.Decompress(data)
		if err != nil {
			log.Error().Err(err).Str("Path", path).Msg("could not decompress vector file")
			return nil, "", err
		}
	}

	log.Debug().Str("Path", path).Str("Format", string(format)).Int("Bytes", len(data)).Msg("read vector file")
	return data, format, nil
}

func writeFile(path string, data []byte) error {
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".lz4") {
		data, err = common.Compress(data)
		if err != nil {
			return err
		}
	}

	if path == Stdio {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not write vector file")
		return err
	}

	log.Debug().Str("Path", path).Int("Bytes", len(data)).Msg("wrote vector file")
	return nil
}
