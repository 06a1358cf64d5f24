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

type TimeEntryRequest struct {
	EmployeeID  string  `json:"employee_id" validate:"required"`
	WorkDate    string  `json:"work_date" validate:"required"`
	HoursWorked float64 `json:"hours_worked" validate:"gte=0"`
	IsPto       bool    `json:"is_pto"`
}

func CreateTimeEntry(c *fiber.Ctx) error {
	var req TimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.EmployeeID == "" || req.HoursWorked < 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	workDate, err := time.Parse(dateLayout, req.WorkDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidDateRange,
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "employee_id = ?", req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrNotFound,
			})
		}
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	entry := models.TimeEntry{
		EmployeeID:  req.EmployeeID,
		WorkDate:    workDate,
		HoursWorked: req.HoursWorked,
		IsPto:       req.IsPto,
	}
	entry.RecalculateHours()

	if err := DB.Create(&entry).Error; err != nil {
		utils.Logger.Error("Failed to create time entry", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Time entry created successfully",
		Data:    entry,
	})
}

// UpdateTimeEntry edits an unlocked entry. Entries consumed by a completed
// payroll run are locked and refuse changes.
func UpdateTimeEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var entry models.TimeEntry
	if err := DB.First(&entry, "entry_id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrNotFound,
			})
		}
		utils.Logger.Error("Failed to fetch time entry", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if entry.IsLocked {
		return c.Status(409).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrEntryLocked,
		})
	}

	var req TimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.HoursWorked < 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.WorkDate != "" {
		workDate, err := time.Parse(dateLayout, req.WorkDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrInvalidDateRange,
			})
		}
		entry.WorkDate = workDate
	}
	entry.HoursWorked = req.HoursWorked
	entry.IsPto = req.IsPto
	entry.RecalculateHours()

	// The locked guard is enforced in SQL as well, so a payroll run that
	// locks the row between the read above and this write still wins.
	result := DB.Model(&models.TimeEntry{}).
		Where("entry_id = ? AND is_locked = ?", entry.EntryID, false).
		Updates(map[string]interface{}{
			"work_date":      entry.WorkDate,
			"hours_worked":   entry.HoursWorked,
			"is_pto":         entry.IsPto,
			"regular_hours":  entry.RegularHours,
			"overtime_hours": entry.OvertimeHours,
		})
	if result.Error != nil {
		utils.Logger.Error("Failed to update time entry", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(409).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrEntryLocked,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Time entry updated successfully",
		Data:    entry,
	})
}

func DeleteTimeEntry(c *fiber.Ctx) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	result := DB.Where("entry_id = ? AND is_locked = ?", entryID, false).Delete(&models.TimeEntry{})
	if result.Error != nil {
		utils.Logger.Error("Failed to delete time entry", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		var entry models.TimeEntry
		if err := DB.First(&entry, "entry_id = ?", entryID).Error; err == nil && entry.IsLocked {
			return c.Status(409).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrEntryLocked,
			})
		}
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Time entry deleted successfully",
	})
}

func GetTimeEntries(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	query := DB.Where("employee_id = ?", employeeID).Order("work_date DESC")
	if start, err := time.Parse(dateLayout, c.Query("start")); err == nil {
		if end, err := time.Parse(dateLayout, c.Query("end")); err == nil {
			query = query.Where("work_date BETWEEN ? AND ?", start, end)
		}
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		utils.Logger.Error("Failed to fetch time entries", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    entries,
	})
}
