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

package common

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4 frame magic number (0x184D2204) in little endian byte order
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// Compress encodes in as an lz4 frame
func Compress(in []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	if err := CompressTo(w, in); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// CompressTo writes in to w as an lz4 frame
func CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := io.Copy(zw, bytes.NewReader(in)); err != nil {
		return err
	}
	return zw.Close()
}

// Decompress decodes an lz4 frame
func Decompress(in []byte) ([]byte, error) {
	r := bytes.NewReader(in)
	w := &bytes.Buffer{}
	zr := lz4.NewReader(r)
	_, err := io.Copy(w, zr)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// IsCompressed reports whether data starts with an lz4 frame header
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, lz4Magic)
}
