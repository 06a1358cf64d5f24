package models

import (
	"time"
)

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"

	PayTypeSalary = "salary"
	PayTypeHourly = "hourly"

	CoverageSingle = "single"
	CoverageFamily = "family"

	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

type Employee struct {
	EmployeeID      string    `gorm:"primaryKey" json:"employee_id"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `gorm:"not null" json:"last_name"`
	Department      string    `json:"department"`
	JobTitle        string    `json:"job_title"`
	CompanyEmail    string    `json:"company_email"`
	Status          string    `gorm:"not null;default:'active'" json:"status"`   // active, terminated
	PayType         string    `gorm:"not null" json:"pay_type"`                  // salary, hourly
	BaseSalary      float64   `json:"base_salary"`                               // annual if salaried, hourly rate otherwise
	MedicalCoverage string    `gorm:"default:'single'" json:"medical_coverage"`  // single, family
	DependentsCount int       `gorm:"default:0" json:"dependents_count"`
	HireDate        time.Time `json:"hire_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type TimeEntry struct {
	EntryID       uint      `gorm:"primaryKey;autoIncrement" json:"entry_id"`
	EmployeeID    string    `gorm:"index;not null" json:"employee_id"`
	Employee      Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	WorkDate      time.Time `gorm:"not null" json:"work_date"`
	HoursWorked   float64   `gorm:"not null" json:"hours_worked"`
	IsPto         bool      `gorm:"default:false" json:"is_pto"`
	RegularHours  float64   `json:"regular_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	IsLocked      bool      `gorm:"default:false" json:"is_locked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecalculateHours derives the regular/overtime split from the raw hours.
// Overtime is decided at the pay-period level by the calculator, so every
// hour on a single entry is regular; the split fields exist for reporting.
func (t *TimeEntry) RecalculateHours() {
	t.RegularHours = t.HoursWorked
	t.OvertimeHours = 0
}

type PayrollRecord struct {
	RecordID                  uint      `gorm:"primaryKey;autoIncrement" json:"record_id"`
	EmployeeID                string    `gorm:"index;not null" json:"employee_id"`
	Employee                  Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	PayPeriodStart            time.Time `gorm:"not null" json:"pay_period_start"`
	PayPeriodEnd              time.Time `gorm:"not null" json:"pay_period_end"`
	RegularPay                float64   `json:"regular_pay"`
	OvertimePay               float64   `json:"overtime_pay"`
	GrossPay                  float64   `json:"gross_pay"`
	StateTax                  float64   `json:"state_tax"`
	FederalTax                float64   `json:"federal_tax"`
	SocialSecurityTax         float64   `json:"social_security_tax"`
	MedicareTax               float64   `json:"medicare_tax"`
	EmployerSocialSecurityTax float64   `json:"employer_social_security_tax"`
	EmployerMedicareTax       float64   `json:"employer_medicare_tax"`
	MedicalDeduction          float64   `json:"medical_deduction"`
	DependentStipend          float64   `json:"dependent_stipend"`
	NetPay                    float64   `json:"net_pay"`
	CreatedAt                 time.Time `json:"created_at"`
}

type User struct {
	UserID             string    `gorm:"primaryKey" json:"user_id"`
	PasswordHash       string    `json:"-"`
	UserType           string    `gorm:"not null;default:'employee'" json:"user_type"` // admin, employee
	Email              string    `json:"email"`
	EmployeeID         string    `gorm:"index" json:"employee_id"`
	MustChangePassword bool      `gorm:"default:false" json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
