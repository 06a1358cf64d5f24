package services

import (
	"errors"
	"fmt"
	"time"

	"payroll_backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BatchOutcome summarizes one payroll processing run. Errors are scoped per
// employee; a failed employee never aborts the batch.
type BatchOutcome struct {
	Success             bool     `json:"success"`
	Errors              []string `json:"errors"`
	Warnings            []string `json:"warnings"`
	EmployeesProcessed  int      `json:"employees_processed"`
	EmployeesWithErrors int      `json:"employees_with_errors"`
}

func (o *BatchOutcome) addError(msg string) {
	o.Errors = append(o.Errors, msg)
	o.Success = false
}

func (o *BatchOutcome) addWarning(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// PayrollProcessor runs payroll across all active employees for a period
// and owns the read side of payroll records.
type PayrollProcessor struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPayrollProcessor(db *gorm.DB, logger *zap.Logger) *PayrollProcessor {
	return &PayrollProcessor{db: db, logger: logger}
}

// ProcessPayroll computes and persists payroll for every active employee
// over [periodStart, periodEnd]. Each employee is handled independently:
// entries are fetched, pay calculated, the record saved and the consumed
// entries locked in one transaction. A failure is recorded against that
// employee and the loop moves on. Employees that already have a record for
// exactly this period are skipped with a warning so a re-run cannot write
// duplicates.
func (p *PayrollProcessor) ProcessPayroll(periodStart, periodEnd time.Time) BatchOutcome {
	outcome := BatchOutcome{Success: true}

	if periodStart.IsZero() || periodEnd.IsZero() || periodStart.After(periodEnd) {
		outcome.addError("invalid pay period: start and end dates must be set and start must not be after end")
		return outcome
	}

	var employees []models.Employee
	if err := p.db.Where("status = ?", models.StatusActive).Find(&employees).Error; err != nil {
		outcome.addError(fmt.Sprintf("failed to fetch active employees: %v", err))
		return outcome
	}
	if len(employees) == 0 {
		outcome.addWarning("no employees found")
		return outcome
	}

	for _, employee := range employees {
		outcome.EmployeesProcessed++

		warnings, err := p.processEmployee(employee, periodStart, periodEnd)
		outcome.Warnings = append(outcome.Warnings, warnings...)
		if err != nil {
			p.logger.Error("payroll processing failed for employee",
				zap.String("employee_id", employee.EmployeeID),
				zap.Error(err))
			outcome.addError(fmt.Sprintf("employee %s (%s): %v", employee.FullName(), employee.EmployeeID, err))
			outcome.EmployeesWithErrors++
		}
	}

	if outcome.EmployeesWithErrors > 0 {
		outcome.addWarning(fmt.Sprintf("%d of %d employees processed successfully",
			outcome.EmployeesProcessed-outcome.EmployeesWithErrors, outcome.EmployeesProcessed))
	}

	return outcome
}

func (p *PayrollProcessor) processEmployee(employee models.Employee, periodStart, periodEnd time.Time) ([]string, error) {
	if employee.PayType != models.PayTypeSalary && employee.PayType != models.PayTypeHourly {
		return nil, fmt.Errorf("unknown pay type %q", employee.PayType)
	}

	var existing int64
	err := p.db.Model(&models.PayrollRecord{}).
		Where("employee_id = ? AND pay_period_start = ? AND pay_period_end = ?",
			employee.EmployeeID, periodStart, periodEnd).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payroll records: %w", err)
	}
	if existing > 0 {
		return []string{fmt.Sprintf("employee %s (%s): already has a payroll record for this period, skipped",
			employee.FullName(), employee.EmployeeID)}, nil
	}

	var entries []models.TimeEntry
	err = p.db.
		Where("employee_id = ? AND work_date BETWEEN ? AND ? AND is_locked = ?",
			employee.EmployeeID, periodStart, periodEnd, false).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	result := CalculatePayroll(employee, entries, periodStart, periodEnd)

	// Violations are an audit trail, not a gate: they are surfaced as
	// warnings and the record is still persisted.
	var warnings []string
	for _, violation := range ValidateResult(result) {
		p.logger.Warn("payroll result validation violation",
			zap.String("employee_id", employee.EmployeeID),
			zap.String("violation", violation))
		warnings = append(warnings, fmt.Sprintf("employee %s (%s): %s",
			employee.FullName(), employee.EmployeeID, violation))
	}

	record := recordFromResult(employee.EmployeeID, result)

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to save payroll record: %w", err)
		}
		return lockEntries(tx, employee, entries)
	})
	if err != nil {
		return warnings, err
	}

	return warnings, nil
}

// lockEntries freezes the entries consumed by a completed run. Salaried pay
// is independent of time entries, so only used PTO is locked for salaried
// employees; every consumed entry is locked for hourly employees.
func lockEntries(tx *gorm.DB, employee models.Employee, entries []models.TimeEntry) error {
	for _, entry := range entries {
		if employee.PayType == models.PayTypeSalary && !entry.IsPto {
			continue
		}
		result := tx.Model(&models.TimeEntry{}).
			Where("entry_id = ?", entry.EntryID).
			Update("is_locked", true)
		if result.Error != nil {
			return fmt.Errorf("failed to lock time entry %d: %w", entry.EntryID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("time entry %d not found while locking", entry.EntryID)
		}
	}
	return nil
}

func recordFromResult(employeeID string, result PayrollResult) models.PayrollRecord {
	return models.PayrollRecord{
		EmployeeID:                employeeID,
		PayPeriodStart:            result.PayPeriodStart,
		PayPeriodEnd:              result.PayPeriodEnd,
		RegularPay:                result.RegularPay,
		OvertimePay:               result.OvertimePay,
		GrossPay:                  result.GrossPay,
		StateTax:                  result.StateTax,
		FederalTax:                result.FederalTax,
		SocialSecurityTax:         result.SocialSecurityTax,
		MedicareTax:               result.MedicareTax,
		EmployerSocialSecurityTax: result.EmployerSocialSecurityTax,
		EmployerMedicareTax:       result.EmployerMedicareTax,
		MedicalDeduction:          result.MedicalDeduction,
		DependentStipend:          result.DependentStipend,
		NetPay:                    result.NetPay,
	}
}

// GetPayrollRecords returns records whose period falls inside the range.
// An invalid range yields an empty list rather than an error.
func (p *PayrollProcessor) GetPayrollRecords(periodStart, periodEnd time.Time) ([]models.PayrollRecord, error) {
	if periodStart.IsZero() || periodEnd.IsZero() || periodStart.After(periodEnd) {
		return []models.PayrollRecord{}, nil
	}

	var records []models.PayrollRecord
	err := p.db.
		Where("pay_period_start >= ? AND pay_period_end <= ?", periodStart, periodEnd).
		Order("employee_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payroll records: %w", err)
	}
	return records, nil
}

// GetPayrollRecordsByEmployee returns every record for one employee, newest
// period first.
func (p *PayrollProcessor) GetPayrollRecordsByEmployee(employeeID string) ([]models.PayrollRecord, error) {
	var records []models.PayrollRecord
	err := p.db.
		Where("employee_id = ?", employeeID).
		Order("pay_period_start DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payroll records: %w", err)
	}
	return records, nil
}

func (p *PayrollProcessor) GetActiveEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := p.db.Where("status = ?", models.StatusActive).Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (p *PayrollProcessor) GetEmployee(employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := p.db.First(&employee, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
