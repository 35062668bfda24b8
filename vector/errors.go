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

package vector

import "errors"

var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrLength             = errors.New("length is greater than the vector length")
	ErrInvalidDate        = errors.New("could not parse reference period")
	ErrMissingRefper      = errors.New("point is missing refper")
	ErrInvalidValue       = errors.New("point value is not numeric")
	ErrUnknownAggregation = errors.New("unknown aggregation mode")
	ErrUnknownFrequency   = errors.New("unknown frequency")
	ErrInvalidOffset      = errors.New("quarterly offset must be 0, 1, or 2")
)
