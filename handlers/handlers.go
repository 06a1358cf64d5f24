package handlers

import (
	"payroll_backend/services"
	"payroll_backend/utils"

	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	Payroll   *services.PayrollProcessor
	Employees *services.EmployeeService
)

func InitHandlers(db *gorm.DB) {
	DB = db
	Payroll = services.NewPayrollProcessor(db, utils.Logger)
	Employees = services.NewEmployeeService(db, utils.Logger)
}
