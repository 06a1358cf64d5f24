package handlers

import (
	"errors"
	"time"

	"payroll_backend/models"
	"payroll_backend/types"
	"payroll_backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddEmployeeRequest struct {
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Department      string  `json:"department"`
	JobTitle        string  `json:"job_title"`
	CompanyEmail    string  `json:"company_email"`
	PayType         string  `json:"pay_type" validate:"required,oneof=salary hourly"`
	BaseSalary      float64 `json:"base_salary" validate:"required,gt=0"`
	MedicalCoverage string  `json:"medical_coverage" validate:"oneof=single family"`
	DependentsCount int     `json:"dependents_count" validate:"gte=0"`
	HireDate        string  `json:"hire_date"`
	IsSeed          bool    `json:"is_seed"`
}

// EmployeeFilters represents the available filter options
type EmployeeFilters struct {
	Department string  `query:"department"`
	Status     string  `query:"status"`
	PayType    string  `query:"pay_type"`
	SalaryFrom float64 `query:"salary_from"`
	SalaryTo   float64 `query:"salary_to"`
}

func GetAllEmployees(c *fiber.Ctx) error {
	var filters EmployeeFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid filter parameters",
		})
	}

	query := DB.Model(&models.Employee{})

	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PayType != "" {
		query = query.Where("pay_type = ?", filters.PayType)
	}
	if filters.SalaryFrom > 0 {
		query = query.Where("base_salary >= ?", filters.SalaryFrom)
	}
	if filters.SalaryTo > 0 {
		query = query.Where("base_salary <= ?", filters.SalaryTo)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	employee, err := Employees.GetEmployee(c.Params("id"))
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if employee == nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employee,
	})
}

// AddEmployee onboards an employee and its login account atomically. The
// response carries the one-time temporary credentials; they are not stored
// in plaintext anywhere.
func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	if req.FirstName == "" || req.LastName == "" ||
		(req.PayType != models.PayTypeSalary && req.PayType != models.PayTypeHourly) ||
		req.BaseSalary <= 0 || req.DependentsCount < 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	hireDate := time.Now()
	if req.HireDate != "" {
		parsed, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrInvalidDateRange,
			})
		}
		hireDate = parsed
	}

	coverage := req.MedicalCoverage
	if coverage == "" {
		coverage = models.CoverageSingle
	}

	employee := models.Employee{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Department:      req.Department,
		JobTitle:        req.JobTitle,
		CompanyEmail:    req.CompanyEmail,
		Status:          models.StatusActive,
		PayType:         req.PayType,
		BaseSalary:      req.BaseSalary,
		MedicalCoverage: coverage,
		DependentsCount: req.DependentsCount,
		HireDate:        hireDate,
	}

	credentials, err := Employees.CreateEmployeeWithUser(&employee, req.IsSeed)
	if err != nil {
		utils.Logger.Error("Failed to onboard employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data: fiber.Map{
			"employee":    employee,
			"credentials": credentials,
		},
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	employee, err := Employees.GetEmployee(c.Params("id"))
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if employee == nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	if err := c.BodyParser(employee); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	employee.EmployeeID = c.Params("id") // identity is immutable

	if err := Employees.UpdateEmployee(employee); err != nil {
		utils.Logger.Error("Failed to update employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

// DeleteEmployee terminates an employee. The default is a soft delete that
// keeps payroll history; ?hard=true cascades through payroll records, time
// entries and the login account.
func DeleteEmployee(c *fiber.Ctx) error {
	hard := c.Query("hard") == "true"

	if err := Employees.DeleteEmployee(c.Params("id"), hard); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrNotFound,
			})
		}
		utils.Logger.Error("Failed to delete employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deleted successfully",
	})
}
