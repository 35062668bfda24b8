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

// Package expression evaluates arithmetic over vectors, e.g. `(v1 + v2) * 2`.
// Expressions support numbers, vector references (`v` followed by the vector id),
// the operators + - * / and parentheses.
package expression

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
)

var vectorRefRegex = regexp.MustCompile(`(?i)v(\d+)`)

// Validate checks the syntax of expr and returns the first error found or nil
func Validate(expr string) *SyntaxError {
	_, err := tokenize(expr)
	return err
}

// Evaluate computes expr using the supplied vectors. Keys of vectors are vector ids
// with or without the leading `v` marker ("1" and "v1" are the same vector). The
// result is always a new vector; the inputs are never modified.
func Evaluate(expr string, vectors map[string]*vector.Vector) (*vector.Vector, error) {
	tokens, serr := tokenize(expr)
	if serr != nil {
		log.Debug().Str("Expression", expr).Str("ErrorType", string(serr.Type)).Int("Position", serr.Position).Msg("could not tokenize expression")
		return nil, serr
	}

	root, err := buildTree(Postfix(tokens), normalizeIDs(vectors))
	if err != nil {
		log.Debug().Err(err).Str("Expression", expr).Msg("could not build expression tree")
		return nil, err
	}

	res, err := evaluate(root)
	if err != nil {
		log.Debug().Err(err).Str("Expression", expr).Msg("could not evaluate expression")
		return nil, err
	}

	switch res := res.(type) {
	case vectorLeaf:
		return res.vec.Copy(), nil
	case scalarLeaf:
		return nil, fmt.Errorf("%w: result is %g", ErrScalarResult, res.value)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperands, res)
	}
}

// VectorIDs returns the ids of the vectors referenced by expr in order of first
// appearance. The scan is independent of the tokenizer so it also works on
// expressions that do not validate.
func VectorIDs(expr string) []string {
	matches := vectorRefRegex.FindAllStringSubmatch(expr, -1)
	ids := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, match := range matches {
		id := match[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func normalizeIDs(vectors map[string]*vector.Vector) map[string]*vector.Vector {
	res := make(map[string]*vector.Vector, len(vectors))
	for k, v := range vectors {
		id := strings.TrimSpace(k)
		if len(id) > 0 && isVectorMarker(rune(id[0])) {
			id = id[1:]
		}
		res[id] = v
	}
	return res
}
