package services

import "github.com/shopspring/decimal"

// RoundResult returns a copy of result with every monetary field rounded to
// the nearest cent, half away from zero. Idempotent: rounding an already
// rounded result changes nothing.
func RoundResult(result PayrollResult) PayrollResult {
	result.RegularPay = roundCents(result.RegularPay)
	result.OvertimePay = roundCents(result.OvertimePay)
	result.GrossPay = roundCents(result.GrossPay)
	result.StateTax = roundCents(result.StateTax)
	result.FederalTax = roundCents(result.FederalTax)
	result.SocialSecurityTax = roundCents(result.SocialSecurityTax)
	result.MedicareTax = roundCents(result.MedicareTax)
	result.EmployerSocialSecurityTax = roundCents(result.EmployerSocialSecurityTax)
	result.EmployerMedicareTax = roundCents(result.EmployerMedicareTax)
	result.MedicalDeduction = roundCents(result.MedicalDeduction)
	result.DependentStipend = roundCents(result.DependentStipend)
	result.NetPay = roundCents(result.NetPay)
	return result
}

func roundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
