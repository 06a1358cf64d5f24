package services

import (
	"time"

	"payroll_backend/models"
)

// Flat-rate deduction policy. Rates are applied to gross pay.
const (
	StateTaxRate       = 0.0315 // IN 3.15%
	FederalTaxRate     = 0.0765
	SocialSecurityRate = 0.062
	MedicareRate       = 0.0145

	singleMedicalRate = 50.0
	familyMedicalRate = 100.0
	dependentStipend  = 45.0

	regularHoursPerPeriod = 40.0
	overtimeMultiplier    = 1.5
)

// PayrollResult holds one employee's computed pay for one period. It is
// in-memory only; the batch processor turns it into a PayrollRecord.
type PayrollResult struct {
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
	PayPeriodStart            time.Time `json:"pay_period_start"`
	PayPeriodEnd              time.Time `json:"pay_period_end"`
}

// CalculatePayroll computes pay for one employee over one period. Pure: it
// reads the employee and entries and touches nothing else.
//
// Salaried employees are prorated by calendar days (annual/365 * days in the
// period, inclusive); their time entries carry PTO bookkeeping only and do
// not change pay. Hourly employees are paid at the base rate for the first
// 40 non-PTO hours in the period and 1.5x beyond that; PTO hours pay at the
// regular rate and never count toward the overtime threshold. The threshold
// is evaluated on period totals, overriding any per-entry split.
func CalculatePayroll(employee models.Employee, entries []models.TimeEntry, periodStart, periodEnd time.Time) PayrollResult {
	result := PayrollResult{
		PayPeriodStart: periodStart,
		PayPeriodEnd:   periodEnd,
	}

	if employee.PayType == models.PayTypeSalary {
		days := daysInclusive(periodStart, periodEnd)
		dailyRate := employee.BaseSalary / 365.0
		result.RegularPay = dailyRate * float64(days)
		result.OvertimePay = 0
	} else {
		result.RegularPay, result.OvertimePay = hourlyPay(employee.BaseSalary, entries)
	}

	applyDeductions(&result, employee)
	return RoundResult(result)
}

// CalculatePayrollPreview estimates pay for unsaved what-if display on time
// entry screens. Deductions match CalculatePayroll exactly; the base pay
// differs for salaried employees, which see the full annual rate instead of
// a prorated amount. Nothing is persisted or locked.
func CalculatePayrollPreview(employee models.Employee, entries []models.TimeEntry) PayrollResult {
	var result PayrollResult

	if employee.PayType == models.PayTypeSalary {
		result.RegularPay = employee.BaseSalary
		result.OvertimePay = 0
	} else {
		result.RegularPay, result.OvertimePay = hourlyPay(employee.BaseSalary, entries)
	}

	applyDeductions(&result, employee)
	return RoundResult(result)
}

func hourlyPay(rate float64, entries []models.TimeEntry) (regular, overtime float64) {
	var workedHours, ptoHours float64
	for _, entry := range entries {
		if entry.IsPto {
			ptoHours += entry.HoursWorked
		} else {
			workedHours += entry.HoursWorked
		}
	}

	if workedHours > regularHoursPerPeriod {
		regular = regularHoursPerPeriod * rate
		overtime = (workedHours - regularHoursPerPeriod) * rate * overtimeMultiplier
	} else {
		regular = workedHours * rate
	}

	regular += ptoHours * rate
	return regular, overtime
}

func applyDeductions(result *PayrollResult, employee models.Employee) {
	result.GrossPay = result.RegularPay + result.OvertimePay

	result.StateTax = result.GrossPay * StateTaxRate
	result.FederalTax = result.GrossPay * FederalTaxRate
	result.SocialSecurityTax = result.GrossPay * SocialSecurityRate
	result.MedicareTax = result.GrossPay * MedicareRate

	// Employer portions mirror the employee portions.
	result.EmployerSocialSecurityTax = result.SocialSecurityTax
	result.EmployerMedicareTax = result.MedicareTax

	// Employer-sponsored medical is only modeled for salaried employees.
	if employee.PayType == models.PayTypeSalary {
		if employee.MedicalCoverage == models.CoverageFamily {
			result.MedicalDeduction = familyMedicalRate
		} else {
			result.MedicalDeduction = singleMedicalRate
		}
	}
	result.DependentStipend = float64(employee.DependentsCount) * dependentStipend

	result.NetPay = result.GrossPay -
		result.StateTax -
		result.FederalTax -
		result.SocialSecurityTax -
		result.MedicareTax -
		result.MedicalDeduction +
		result.DependentStipend
}

func daysInclusive(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}
