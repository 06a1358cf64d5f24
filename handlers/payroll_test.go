package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"payroll_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPayrollEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/payroll/process", ProcessPayroll)

	employee := models.Employee{
		EmployeeID:      "EMP100",
		FirstName:       "Jane",
		LastName:        "Smith",
		Status:          models.StatusActive,
		PayType:         models.PayTypeHourly,
		BaseSalary:      25.0,
		MedicalCoverage: models.CoverageSingle,
	}
	require.NoError(t, db.Create(&employee).Error)

	entry := models.TimeEntry{
		EmployeeID:  employee.EmployeeID,
		WorkDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		HoursWorked: 8.0,
	}
	entry.RecalculateHours()
	require.NoError(t, db.Create(&entry).Error)

	req := jsonRequest(t, "POST", "/payroll/process", ProcessPayrollRequest{
		PayPeriodStart: "2024-03-01",
		PayPeriodEnd:   "2024-03-14",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.Equal(t, true, body["success"])

	var count int64
	require.NoError(t, db.Model(&models.PayrollRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var reloaded models.TimeEntry
	require.NoError(t, db.First(&reloaded, "entry_id = ?", entry.EntryID).Error)
	assert.True(t, reloaded.IsLocked)
}

func TestProcessPayrollEndpointRejectsBadDates(t *testing.T) {
	app, _ := setupTest(t)
	app.Post("/payroll/process", ProcessPayroll)

	req := jsonRequest(t, "POST", "/payroll/process", ProcessPayrollRequest{
		PayPeriodStart: "not-a-date",
		PayPeriodEnd:   "2024-03-14",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetPayrollRecordsEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/payroll/process", ProcessPayroll)
	app.Get("/payroll/records", GetPayrollRecords)

	employee := models.Employee{
		EmployeeID: "EMP200",
		FirstName:  "John",
		LastName:   "Doe",
		Status:     models.StatusActive,
		PayType:    models.PayTypeSalary,
		BaseSalary: 52000.0,
	}
	require.NoError(t, db.Create(&employee).Error)

	req := jsonRequest(t, "POST", "/payroll/process", ProcessPayrollRequest{
		PayPeriodStart: "2024-03-01",
		PayPeriodEnd:   "2024-03-14",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/payroll/records?start=2024-03-01&end=2024-03-14", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeResponse(t, resp)
	records := body["data"].([]interface{})
	assert.Len(t, records, 1)

	// Misordered range normalizes to an empty list.
	resp, err = app.Test(httptest.NewRequest("GET", "/payroll/records?start=2024-03-14&end=2024-03-01", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body = decodeResponse(t, resp)
	assert.Empty(t, body["data"])
}

func TestPreviewPayrollEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Get("/payroll/preview", PreviewPayroll)

	employee := models.Employee{
		EmployeeID:      "EMP300",
		FirstName:       "Sal",
		LastName:        "Aried",
		Status:          models.StatusActive,
		PayType:         models.PayTypeSalary,
		BaseSalary:      52000.0,
		MedicalCoverage: models.CoverageSingle,
	}
	require.NoError(t, db.Create(&employee).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/payroll/preview?employee_id=EMP300", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeResponse(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 52000.0, data["regular_pay"])

	var count int64
	require.NoError(t, db.Model(&models.PayrollRecord{}).Count(&count).Error)
	assert.Zero(t, count, "preview must not persist anything")
}
