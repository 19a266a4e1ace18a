package services

import (
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

type ExpenseInput struct {
	ProjectID   uint
	Amount      float64
	Description string
	Company     string
	CompanyID   *uint
	InvoiceURL  *string
	Date        string
}

type ExpenseRepository interface {
	FindByID(expenseID uint) (models.Expense, bool, error)
	ListByProjects(projectIDs []uint) ([]models.Expense, error)
	Create(expense *models.Expense) error
	Save(expense *models.Expense) error
	Delete(expenseID uint) error
}

type CompanyLookup interface {
	FindByID(companyID uint) (models.Company, bool, error)
}

type ExpenseService struct {
	permissions *PermissionEvaluator
	access      *AccessResolver
	expenses    ExpenseRepository
	companies   CompanyLookup
	location    *time.Location
}

func NewExpenseService(permissions *PermissionEvaluator, access *AccessResolver, expenses ExpenseRepository, companies CompanyLookup, location *time.Location) *ExpenseService {
	if location == nil {
		location = time.UTC
	}
	return &ExpenseService{
		permissions: permissions,
		access:      access,
		expenses:    expenses,
		companies:   companies,
		location:    location,
	}
}

func (service *ExpenseService) ListExpenses(userID uint) ([]models.Expense, error) {
	if userID == 0 {
		return []models.Expense{}, nil
	}
	projectIDs, err := service.access.AccessibleProjectIDs(userID)
	if err != nil {
		return nil, err
	}
	expenses, err := service.expenses.ListByProjects(projectIDs)
	if err != nil {
		return nil, storeFailure("load expenses", err)
	}
	return expenses, nil
}

func (service *ExpenseService) CreateExpense(userID uint, input ExpenseInput) (models.Expense, error) {
	if userID == 0 {
		return models.Expense{}, ErrNotAuthenticated
	}
	expense, err := service.buildExpense(input)
	if err != nil {
		return models.Expense{}, err
	}
	if !service.permissions.Evaluate(userID, expense.ProjectID).CanEdit {
		return models.Expense{}, ErrEditDenied
	}
	if err := service.resolveCompany(&expense, "create expense"); err != nil {
		return models.Expense{}, err
	}

	expense.OwnerUserID = userID
	if err := service.expenses.Create(&expense); err != nil {
		return models.Expense{}, storeFailure("create expense", err)
	}
	return expense, nil
}

func (service *ExpenseService) UpdateExpense(userID uint, expenseID uint, input ExpenseInput) (models.Expense, error) {
	if userID == 0 {
		return models.Expense{}, ErrNotAuthenticated
	}
	updated, err := service.buildExpense(input)
	if err != nil {
		return models.Expense{}, err
	}
	existing, err := service.loadChangeable(userID, expenseID, "update expense")
	if err != nil {
		return models.Expense{}, err
	}
	if updated.ProjectID != existing.ProjectID && !service.permissions.Evaluate(userID, updated.ProjectID).CanEdit {
		return models.Expense{}, ErrEditDenied
	}
	if err := service.resolveCompany(&updated, "update expense"); err != nil {
		return models.Expense{}, err
	}

	updated.ID = existing.ID
	updated.OwnerUserID = existing.OwnerUserID
	updated.CreatedAt = existing.CreatedAt
	if err := service.expenses.Save(&updated); err != nil {
		return models.Expense{}, storeFailure("update expense", err)
	}
	return updated, nil
}

func (service *ExpenseService) DeleteExpense(userID uint, expenseID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if _, err := service.loadChangeable(userID, expenseID, "delete expense"); err != nil {
		return err
	}
	if err := service.expenses.Delete(expenseID); err != nil {
		return storeFailure("delete expense", err)
	}
	return nil
}

func (service *ExpenseService) buildExpense(input ExpenseInput) (models.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if input.ProjectID == 0 || description == "" || !(input.Amount > 0) || math.IsInf(input.Amount, 0) {
		return models.Expense{}, ErrInvalidInput
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input.Date), service.location)
	if err != nil {
		return models.Expense{}, ErrInvalidInput
	}
	if input.CompanyID != nil && *input.CompanyID == 0 {
		input.CompanyID = nil
	}

	return models.Expense{
		ProjectID:   input.ProjectID,
		Amount:      math.Round(input.Amount*100) / 100,
		Description: description,
		Company:     strings.TrimSpace(input.Company),
		CompanyID:   input.CompanyID,
		InvoiceURL:  optionalText(input.InvoiceURL),
		Date:        day,
	}, nil
}

// resolveCompany checks the company reference and fills the free-text name
// from it when none was given.
func (service *ExpenseService) resolveCompany(expense *models.Expense, action string) error {
	if expense.CompanyID == nil {
		if expense.Company == "" {
			return ErrInvalidInput
		}
		return nil
	}
	company, found, err := service.companies.FindByID(*expense.CompanyID)
	if err != nil {
		return storeFailure(action, err)
	}
	if !found || !company.BelongsToProject(expense.ProjectID) {
		return ErrInvalidCompany
	}
	if expense.Company == "" {
		expense.Company = company.Name
	}
	return nil
}

func (service *ExpenseService) loadChangeable(userID uint, expenseID uint, action string) (models.Expense, error) {
	expense, found, err := service.expenses.FindByID(expenseID)
	if err != nil {
		return models.Expense{}, storeFailure(action, err)
	}
	if !found {
		return models.Expense{}, ErrExpenseNotFound
	}
	if expense.OwnerUserID == userID {
		return expense, nil
	}
	permissions := service.permissions.Evaluate(userID, expense.ProjectID)
	if !permissions.CanView {
		return models.Expense{}, ErrExpenseNotFound
	}
	if permissions.Role != models.ProjectRoleOwner {
		return models.Expense{}, ErrEntryEditDenied
	}
	return expense, nil
}
