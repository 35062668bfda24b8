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
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/penny-vault/pv-vector/observability/opentelemetry"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ExpressionRequest struct {
	Expression string                    `json:"expression"`
	Vectors    map[string]*vector.Vector `json:"vectors,omitempty"`
	Round      *int                      `json:"round,omitempty"`
	Bankers    bool                      `json:"bankers,omitempty"`
}

type ValidateResponse struct {
	Valid bool                    `json:"valid"`
	Error *expression.SyntaxError `json:"error,omitempty"`
}

type IDsResponse struct {
	IDs []string `json:"ids"`
}

type VectorResponse struct {
	Result *vector.Vector `json:"result"`
}

func parseExpressionRequest(c *fiber.Ctx) (*ExpressionRequest, error) {
	req := &ExpressionRequest{}
	if err := json.Unmarshal(c.Body(), req); err != nil {
		log.Warn().Err(err).Str("Path", c.Path()).Msg("could not parse expression request")
		return nil, err
	}
	return req, nil
}

// ValidateExpression checks the syntax of an expression
func ValidateExpression(c *fiber.Ctx) error {
	_, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), "handler.ValidateExpression")
	defer span.End()
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	req, err := parseExpressionRequest(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	span.SetAttributes(attribute.String("expression", req.Expression))
	if syntaxErr := expression.Validate(req.Expression); syntaxErr != nil {
		return c.JSON(ValidateResponse{Valid: false, Error: syntaxErr})
	}

	return c.JSON(ValidateResponse{Valid: true})
}

// ExpressionIDs lists the vector ids referenced by an expression
func ExpressionIDs(c *fiber.Ctx) error {
	req, err := parseExpressionRequest(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	return c.JSON(IDsResponse{IDs: expression.VectorIDs(req.Expression)})
}

// EvaluateExpression computes an expression over the vectors in the request body.
// Syntax errors are reported with status 400; errors that occur while evaluating a
// well formed expression with status 422.
func EvaluateExpression(c *fiber.Ctx) error {
	_, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), "handler.EvaluateExpression")
	defer span.End()
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	req, err := parseExpressionRequest(c)
	if err != nil {
		span.SetStatus(codes.Error, "invalid request body")
		return sendError(c, fiber.StatusBadRequest, err)
	}

	subLog := log.With().Str("Expression", req.Expression).Int("NumVectors", len(req.Vectors)).Logger()
	span.SetAttributes(
		attribute.String("expression", req.Expression),
		attribute.Int("vectors", len(req.Vectors)),
	)

	res, err := expression.Evaluate(req.Expression, req.Vectors)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")

		var syntaxErr *expression.SyntaxError
		if errors.As(err, &syntaxErr) {
			subLog.Info().Err(err).Msg("expression has a syntax error")
			return sendSyntaxError(c, syntaxErr)
		}

		subLog.Warn().Err(err).Msg("could not evaluate expression")
		return sendError(c, fiber.StatusUnprocessableEntity, err)
	}

	if req.Round != nil {
		if req.Bankers {
			res = res.RoundBankers(*req.Round)
		} else {
			res = res.Round(*req.Round)
		}
	}

	return sendVector(c, res)
}

func sendVector(c *fiber.Ctx, v *vector.Vector) error {
	if fingerprint, err := v.Fingerprint(); err == nil {
		c.Set(FingerprintHeader, fingerprint)
	} else {
		log.Warn().Err(err).Msg("could not fingerprint vector")
	}

	return c.JSON(VectorResponse{Result: v})
}
