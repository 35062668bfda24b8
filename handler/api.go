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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/pv-vector/common"
	"github.com/penny-vault/pv-vector/expression"
)

const FingerprintHeader = "X-Vector-Fingerprint"

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Version string `json:"version" example:"0.1.0-dev"`
	Time    string `json:"time" example:"2021-06-19T08:09:10.115924-05:00"`
}

// ErrorResponse is returned for every failed request. Type and Position are only
// set for syntax errors in an expression.
type ErrorResponse struct {
	Status   string               `json:"status"`
	Message  string               `json:"message"`
	Type     expression.ErrorType `json:"type,omitempty"`
	Position *int                 `json:"position,omitempty"`
}

func Ping(c *fiber.Ctx) error {
	return c.JSON(PingResponse{
		Status:  "success",
		Message: "API is alive",
		Version: common.CurrentVersion.String(),
		Time:    time.Now().Format(time.RFC3339Nano),
	})
}

func sendError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}

func sendSyntaxError(c *fiber.Ctx, err *expression.SyntaxError) error {
	position := err.Position
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Status:   "error",
		Message:  err.Error(),
		Type:     err.Type,
		Position: &position,
	})
}
