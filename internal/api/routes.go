package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if strings.HasPrefix(handler.uploads.BaseURL(), "/") {
		app.Static(handler.uploads.BaseURL(), handler.uploads.Dir(), fiber.Static{ByteRange: true})
	}
	if handler.recorder != nil {
		app.Get("/metrics", handler.recorder.Handler())
	}
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	projects := api.Group("/projects", handler.AuthRequired)
	projects.Get("", handler.ListProjects)
	projects.Post("", handler.CreateProject)
	projects.Get("/:id", handler.GetProject)
	projects.Put("/:id", handler.UpdateProject)
	projects.Delete("/:id", handler.DeleteProject)
	projects.Get("/:id/permissions", handler.GetProjectPermissions)

	projects.Get("/:id/people", handler.ListProjectPeople)
	projects.Post("/:id/people", handler.AddProjectPerson)
	projects.Put("/:id/people/:personId", handler.UpdateProjectPerson)
	projects.Delete("/:id/people/:personId", handler.RemoveProjectPerson)

	projects.Get("/:id/companies", handler.ListProjectCompanies)
	projects.Post("/:id/companies", handler.AddProjectCompany)
	projects.Put("/:id/companies/:companyId", handler.UpdateProjectCompany)
	projects.Delete("/:id/companies/:companyId", handler.RemoveProjectCompany)

	projects.Get("/:id/members", handler.ListMembers)
	projects.Post("/:id/members", handler.InviteMember)
	projects.Delete("/:id/members/:userId", handler.RemoveMember)

	projects.Post("/:id/transfer", handler.TransferPersonalItems)
	projects.Get("/:id/weather", handler.GetProjectWeather)

	people := api.Group("/people", handler.AuthRequired)
	people.Get("", handler.ListVisiblePeople)
	people.Delete("/:id", handler.DeleteLegacyPerson)

	companies := api.Group("/companies", handler.AuthRequired)
	companies.Get("", handler.ListVisibleCompanies)
	companies.Delete("/:id", handler.DeleteLegacyCompany)

	personal := api.Group("/personal", handler.AuthRequired)
	personal.Get("/people", handler.ListPersonalPeople)
	personal.Post("/people", handler.CreatePersonalPerson)
	personal.Put("/people/:id", handler.UpdatePersonalPerson)
	personal.Delete("/people/:id", handler.DeletePersonalPerson)
	personal.Get("/companies", handler.ListPersonalCompanies)
	personal.Post("/companies", handler.CreatePersonalCompany)
	personal.Put("/companies/:id", handler.UpdatePersonalCompany)
	personal.Delete("/companies/:id", handler.DeletePersonalCompany)

	timeEntries := api.Group("/time", handler.AuthRequired)
	timeEntries.Get("", handler.ListTimeEntries)
	timeEntries.Post("", handler.CreateTimeEntry)
	timeEntries.Get("/timer", handler.GetRunningTimer)
	timeEntries.Post("/timer/start", handler.StartTimer)
	timeEntries.Post("/timer/stop", handler.StopTimer)
	timeEntries.Put("/:id", handler.UpdateTimeEntry)
	timeEntries.Delete("/:id", handler.DeleteTimeEntry)

	expenses := api.Group("/expenses", handler.AuthRequired)
	expenses.Get("", handler.ListExpenses)
	expenses.Post("", handler.CreateExpense)
	expenses.Put("/:id", handler.UpdateExpense)
	expenses.Delete("/:id", handler.DeleteExpense)

	journal := api.Group("/journal", handler.AuthRequired)
	journal.Get("", handler.ListJournalEntries)
	journal.Post("", handler.CreateJournalEntry)
	journal.Put("/:id", handler.UpdateJournalEntry)
	journal.Delete("/:id", handler.DeleteJournalEntry)

	api.Post("/uploads", handler.AuthRequired, handler.Upload)
	api.Use(handler.NotFound)
}
