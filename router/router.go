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

package router

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/penny-vault/pv-vector/handler"
	"github.com/penny-vault/pv-vector/middleware"
)

// NewApp creates a fiber application with logging, panic recovery and every API
// route configured. Additional middleware runs after those and before the routes.
func NewApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
	})

	app.Use(middleware.NewLogger())
	app.Use(recover.New())
	for _, h := range handlers {
		app.Use(h)
	}
	SetupRoutes(app)

	return app
}

// SetupRoutes registers the API routes on app
func SetupRoutes(app *fiber.App) {
	api := app.Group("/v1")
	api.Get("/", handler.Ping)

	// Expression
	expr := api.Group("/expression")
	expr.Post("/validate", handler.ValidateExpression)
	expr.Post("/ids", handler.ExpressionIDs)
	expr.Post("/evaluate", handler.EvaluateExpression)

	// Vector
	vec := api.Group("/vector")
	vec.Post("/resample", handler.ResampleVector)
	vec.Post("/transform", handler.TransformVector)
}
