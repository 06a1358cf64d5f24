package services

import (
	"fmt"
	"math"
)

const (
	centTolerance = 0.01
	rateTolerance = 0.0001
)

// ValidateResult checks a rounded PayrollResult against the arithmetic
// invariants of the deduction policy and returns one message per violation.
// An empty slice means the result is consistent. The checks are independent
// and the function never mutates its input; violations are an audit signal
// and do not block persistence.
func ValidateResult(result PayrollResult) []string {
	var violations []string

	calculatedGross := result.RegularPay + result.OvertimePay
	if math.Abs(calculatedGross-result.GrossPay) > centTolerance {
		violations = append(violations, "gross pay does not match sum of regular and overtime pay")
	}

	calculatedNet := result.GrossPay -
		result.StateTax -
		result.FederalTax -
		result.SocialSecurityTax -
		result.MedicareTax -
		result.MedicalDeduction +
		result.DependentStipend
	if math.Abs(calculatedNet-result.NetPay) > centTolerance {
		violations = append(violations, "net pay does not match gross minus deductions plus stipend")
	}

	violations = appendRateViolation(violations, result.StateTax, result.GrossPay, StateTaxRate, "state tax")
	violations = appendRateViolation(violations, result.FederalTax, result.GrossPay, FederalTaxRate, "federal tax")
	violations = appendRateViolation(violations, result.SocialSecurityTax, result.GrossPay, SocialSecurityRate, "social security tax")
	violations = appendRateViolation(violations, result.MedicareTax, result.GrossPay, MedicareRate, "medicare tax")

	if math.Abs(result.SocialSecurityTax-result.EmployerSocialSecurityTax) > centTolerance {
		violations = append(violations, "employer social security tax does not match employee portion")
	}
	if math.Abs(result.MedicareTax-result.EmployerMedicareTax) > centTolerance {
		violations = append(violations, "employer medicare tax does not match employee portion")
	}

	if !result.PayPeriodStart.IsZero() && !result.PayPeriodEnd.IsZero() {
		if result.PayPeriodEnd.Before(result.PayPeriodStart) {
			violations = append(violations, "pay period end date is before start date")
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"regular pay", result.RegularPay},
		{"overtime pay", result.OvertimePay},
		{"gross pay", result.GrossPay},
		{"net pay", result.NetPay},
		{"state tax", result.StateTax},
		{"federal tax", result.FederalTax},
		{"social security tax", result.SocialSecurityTax},
		{"medicare tax", result.MedicareTax},
		{"employer social security tax", result.EmployerSocialSecurityTax},
		{"employer medicare tax", result.EmployerMedicareTax},
		{"medical deduction", result.MedicalDeduction},
		{"dependent stipend", result.DependentStipend},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			violations = append(violations, fmt.Sprintf("%s cannot be negative (got %.2f)", field.name, field.value))
		}
	}

	return violations
}

// Rate checks are skipped on zero gross: every tax is zero there and the
// implied rate is undefined.
func appendRateViolation(violations []string, tax, grossPay, expectedRate float64, name string) []string {
	if grossPay <= 0 {
		return violations
	}
	actualRate := tax / grossPay
	if math.Abs(actualRate-expectedRate) > rateTolerance {
		violations = append(violations, fmt.Sprintf("%s rate is incorrect (expected %.4f, got %.4f)", name, expectedRate, actualRate))
	}
	return violations
}
