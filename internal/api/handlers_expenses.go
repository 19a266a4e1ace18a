package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sitelog/internal/services"
)

type expensePayload struct {
	ProjectID   uint    `json:"projectId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Company     string  `json:"company"`
	CompanyID   *uint   `json:"companyId"`
	InvoiceURL  *string `json:"invoiceUrl"`
	Date        string  `json:"date"`
}

func (handler *Handler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := handler.expenseService.ListExpenses(currentUserID(c))
	return respondRead(c, expenses, err)
}

func (handler *Handler) CreateExpense(c *fiber.Ctx) error {
	payload := expensePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	expense, err := handler.expenseService.CreateExpense(currentUserID(c), services.ExpenseInput(payload))
	return handler.respondMutation(c, "create_expense", err, fiber.Map{"expense": expense})
}

func (handler *Handler) UpdateExpense(c *fiber.Ctx) error {
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	payload := expensePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return invalidInput(c)
	}
	expense, err := handler.expenseService.UpdateExpense(currentUserID(c), expenseID, services.ExpenseInput(payload))
	return handler.respondMutation(c, "update_expense", err, fiber.Map{"expense": expense})
}

func (handler *Handler) DeleteExpense(c *fiber.Ctx) error {
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidInput(c)
	}
	err := handler.expenseService.DeleteExpense(currentUserID(c), expenseID)
	return handler.respondMutation(c, "delete_expense", err, nil)
}
