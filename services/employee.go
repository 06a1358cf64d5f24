package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"payroll_backend/models"
	"payroll_backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeCredentials is returned exactly once at onboarding; the plaintext
// temporary password is never persisted.
type EmployeeCredentials struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// EmployeeService owns employee lifecycle: onboarding with a paired login
// account, updates, and soft/hard deletion.
type EmployeeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEmployeeService(db *gorm.DB, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{db: db, logger: logger}
}

// NewEmployeeID returns a fresh employee id.
func NewEmployeeID() string {
	return "EMP" + strings.ToUpper(uuid.New().String()[:8])
}

// CreateEmployeeWithUser persists the employee together with its login
// account in one transaction; if the account cannot be created the employee
// row is rolled back with it. Seeded records get the well-known seed
// password, everything else a random temporary one. The returned plaintext
// password is shown once and stored only as a bcrypt hash, with the
// must-change flag set.
func (s *EmployeeService) CreateEmployeeWithUser(employee *models.Employee, isSeed bool) (*EmployeeCredentials, error) {
	if employee.EmployeeID == "" {
		employee.EmployeeID = NewEmployeeID()
	}
	if employee.Status == "" {
		employee.Status = models.StatusActive
	}

	tempPassword := utils.SeedPassword
	if !isSeed {
		var err error
		tempPassword, err = utils.GenerateTempPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to generate temporary password: %w", err)
		}
	}

	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(employee).Error; err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		user := models.User{
			UserID:             employee.EmployeeID,
			PasswordHash:       hash,
			UserType:           models.UserTypeEmployee,
			Email:              employee.CompanyEmail,
			EmployeeID:         employee.EmployeeID,
			MustChangePassword: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user account: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("employee onboarding failed",
			zap.String("employee_id", employee.EmployeeID),
			zap.Error(err))
		return nil, err
	}

	return &EmployeeCredentials{
		UserID:   employee.EmployeeID,
		Password: tempPassword,
		FullName: employee.FullName(),
	}, nil
}

func (s *EmployeeService) UpdateEmployee(employee *models.Employee) error {
	result := s.db.Model(&models.Employee{}).
		Where("employee_id = ?", employee.EmployeeID).
		Updates(map[string]interface{}{
			"first_name":       employee.FirstName,
			"last_name":        employee.LastName,
			"department":       employee.Department,
			"job_title":        employee.JobTitle,
			"company_email":    employee.CompanyEmail,
			"status":           employee.Status,
			"pay_type":         employee.PayType,
			"base_salary":      employee.BaseSalary,
			"medical_coverage": employee.MedicalCoverage,
			"dependents_count": employee.DependentsCount,
			"hire_date":        employee.HireDate,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEmployee removes an employee. Soft deletion flips the status to
// terminated and keeps payroll and time-entry history. Hard deletion
// cascades through payroll records, time entries and the login account in a
// single transaction, so a failure leaves no partial cascade behind.
func (s *EmployeeService) DeleteEmployee(employeeID string, hard bool) error {
	if !hard {
		result := s.db.Model(&models.Employee{}).
			Where("employee_id = ?", employeeID).
			Update("status", models.StatusTerminated)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.PayrollRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete payroll records: %w", err)
		}
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.TimeEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete time entries: %w", err)
		}
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete user account: %w", err)
		}

		result := tx.Where("employee_id = ?", employeeID).Delete(&models.Employee{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete employee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *EmployeeService) GetEmployee(employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.First(&employee, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
