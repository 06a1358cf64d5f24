package handlers

import (
	"time"

	"payroll_backend/models"
	"payroll_backend/services"
	"payroll_backend/types"
	"payroll_backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type ProcessPayrollRequest struct {
	PayPeriodStart string `json:"pay_period_start" validate:"required"`
	PayPeriodEnd   string `json:"pay_period_end" validate:"required"`
}

// ProcessPayroll runs the batch for one pay period and returns the outcome,
// errors and all. The batch itself never fails the request; only a bad
// request body does.
func ProcessPayroll(c *fiber.Ctx) error {
	var req ProcessPayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	start, err := time.Parse(dateLayout, req.PayPeriodStart)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidDateRange,
		})
	}
	end, err := time.Parse(dateLayout, req.PayPeriodEnd)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidDateRange,
		})
	}

	outcome := Payroll.ProcessPayroll(start, end)
	utils.Logger.Info("payroll batch finished",
		zap.Int("employees_processed", outcome.EmployeesProcessed),
		zap.Int("employees_with_errors", outcome.EmployeesWithErrors),
		zap.Bool("success", outcome.Success))

	return c.JSON(types.APIResponse{
		Success: outcome.Success,
		Data:    outcome,
	})
}

// GetPayrollRecords lists records for a period; start/end come as
// YYYY-MM-DD query params. An unparseable or misordered range returns an
// empty list, matching the read-side normalization rule.
func GetPayrollRecords(c *fiber.Ctx) error {
	start, errStart := time.Parse(dateLayout, c.Query("start"))
	end, errEnd := time.Parse(dateLayout, c.Query("end"))
	if errStart != nil || errEnd != nil {
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    []models.PayrollRecord{},
		})
	}

	records, err := Payroll.GetPayrollRecords(start, end)
	if err != nil {
		utils.Logger.Error("Failed to fetch payroll records", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

// GetEmployeePayrollRecords lists the pay history for one employee.
func GetEmployeePayrollRecords(c *fiber.Ctx) error {
	employeeID := c.Params("id")

	records, err := Payroll.GetPayrollRecordsByEmployee(employeeID)
	if err != nil {
		utils.Logger.Error("Failed to fetch payroll records", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

// PreviewPayroll returns a what-if calculation over the employee's current
// unlocked entries in the range. Nothing is persisted or locked.
func PreviewPayroll(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	employee, err := Payroll.GetEmployee(employeeID)
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

	var entries []models.TimeEntry
	query := DB.Where("employee_id = ? AND is_locked = ?", employeeID, false)
	if start, err := time.Parse(dateLayout, c.Query("start")); err == nil {
		if end, err := time.Parse(dateLayout, c.Query("end")); err == nil {
			query = query.Where("work_date BETWEEN ? AND ?", start, end)
		}
	}
	if err := query.Find(&entries).Error; err != nil {
		utils.Logger.Error("Failed to fetch time entries", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	result := services.CalculatePayrollPreview(*employee, entries)
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    result,
	})
}
