package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", handler.Metrics)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/status", handler.AuthStatus)
	auth.Post("/setup", handler.SetupPIN)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-pin", handler.AuthRequired, handler.ChangePIN)

	foods := api.Group("/foods", handler.AuthRequired)
	foods.Get("", handler.ListFoods)
	foods.Post("", handler.CreateFood)
	foods.Get("/:id", handler.GetFood)
	foods.Patch("/:id", handler.UpdateFood)
	foods.Put("/:id", handler.UpdateFood)
	foods.Delete("/:id", handler.DeleteFood)

	weights := api.Group("/weights", handler.AuthRequired)
	weights.Get("", handler.ListWeights)
	weights.Post("", handler.SaveWeight)
	weights.Get("/latest", handler.LatestWeight)
	weights.Get("/:id", handler.GetWeight)
	weights.Patch("/:id", handler.UpdateWeight)
	weights.Put("/:id", handler.UpdateWeight)
	weights.Delete("/:id", handler.DeleteWeight)

	recipes := api.Group("/recipes", handler.AuthRequired)
	recipes.Get("", handler.ListRecipes)
	recipes.Post("", handler.CreateRecipe)
	recipes.Get("/:id", handler.GetRecipe)
	recipes.Patch("/:id", handler.UpdateRecipe)
	recipes.Put("/:id", handler.UpdateRecipe)
	recipes.Delete("/:id", handler.DeleteRecipe)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Patch("", handler.UpdateSettings)
	settings.Put("", handler.UpdateSettings)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/today", handler.TodayStats)
	stats.Get("/weekly", handler.WeeklyStats)
	stats.Get("/monthly", handler.MonthlyStats)
	stats.Get("/weight", handler.WeightStats)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	api.Post("/import", handler.AuthRequired, handler.ImportBackup)
	api.Post("/data/clear", handler.AuthRequired, handler.ClearAllData)
}
