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

package handler

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-vector/observability/opentelemetry"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type ResampleRequest struct {
	Vector    *vector.Vector     `json:"vector"`
	Frequency string             `json:"frequency"`
	Mode      vector.Aggregation `json:"mode"`
	Offset    int                `json:"offset"`
}

type TransformRequest struct {
	Vector    *vector.Vector `json:"vector"`
	Transform string         `json:"transform"`
}

var transforms = map[string]func(*vector.Vector) *vector.Vector{
	"periodToPeriodPercentageChange":         (*vector.Vector).PeriodToPeriodPercentageChange,
	"periodToPeriodDifference":               (*vector.Vector).PeriodToPeriodDifference,
	"samePeriodPreviousYearPercentageChange": (*vector.Vector).SamePeriodPreviousYearPercentageChange,
	"samePeriodPreviousYearDifference":       (*vector.Vector).SamePeriodPreviousYearDifference,
}

// ResampleVector converts a vector to a lower frequency
func ResampleVector(c *fiber.Ctx) error {
	_, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), "handler.ResampleVector")
	defer span.End()
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	req := ResampleRequest{Mode: vector.Last}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Warn().Err(err).Msg("could not parse resample request")
		return sendError(c, fiber.StatusBadRequest, err)
	}

	if req.Vector == nil {
		return sendError(c, fiber.StatusBadRequest, fmt.Errorf("vector is required"))
	}

	frequency, err := vector.ParseFrequency(req.Frequency)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	span.SetAttributes(
		attribute.String("frequency", string(frequency)),
		attribute.String("mode", string(req.Mode)),
		attribute.Int("points", req.Vector.Len()),
	)

	res, err := req.Vector.Resample(frequency, req.Mode, req.Offset)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	return sendVector(c, res)
}

// TransformVector applies a period over period transformation to a vector
func TransformVector(c *fiber.Ctx) error {
	req := TransformRequest{}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Warn().Err(err).Msg("could not parse transform request")
		return sendError(c, fiber.StatusBadRequest, err)
	}

	if req.Vector == nil {
		return sendError(c, fiber.StatusBadRequest, fmt.Errorf("vector is required"))
	}

	fn, ok := transforms[req.Transform]
	if !ok {
		return sendError(c, fiber.StatusBadRequest, fmt.Errorf("unknown transform %q", req.Transform))
	}

	return sendVector(c, fn(req.Vector))
}
