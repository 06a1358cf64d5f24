package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"payroll_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Employee{
		EmployeeID: id,
		FirstName:  "Jane",
		LastName:   "Smith",
		Status:     models.StatusActive,
		PayType:    models.PayTypeHourly,
		BaseSalary: 25,
	}).Error)
}

func TestCreateTimeEntryEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/time-entries", CreateTimeEntry)

	seedEmployee(t, db, "EMP001")

	resp, err := app.Test(jsonRequest(t, "POST", "/time-entries", TimeEntryRequest{
		EmployeeID:  "EMP001",
		WorkDate:    "2024-03-04",
		HoursWorked: 8,
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entry models.TimeEntry
	require.NoError(t, db.First(&entry, "employee_id = ?", "EMP001").Error)
	assert.Equal(t, 8.0, entry.HoursWorked)
	assert.Equal(t, 8.0, entry.RegularHours)
	assert.False(t, entry.IsLocked)

	// unknown employee
	resp, err = app.Test(jsonRequest(t, "POST", "/time-entries", TimeEntryRequest{
		EmployeeID:  "EMP404",
		WorkDate:    "2024-03-04",
		HoursWorked: 8,
	}))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUpdateTimeEntryEndpointRespectsLock(t *testing.T) {
	app, db := setupTest(t)
	app.Put("/time-entries/:id", UpdateTimeEntry)

	seedEmployee(t, db, "EMP001")
	entry := models.TimeEntry{
		EmployeeID:  "EMP001",
		WorkDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		HoursWorked: 8,
	}
	entry.RecalculateHours()
	require.NoError(t, db.Create(&entry).Error)

	resp, err := app.Test(jsonRequest(t, "PUT", "/time-entries/1", TimeEntryRequest{
		EmployeeID:  "EMP001",
		WorkDate:    "2024-03-05",
		HoursWorked: 6,
		IsPto:       true,
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var reloaded models.TimeEntry
	require.NoError(t, db.First(&reloaded, "entry_id = ?", entry.EntryID).Error)
	assert.Equal(t, 6.0, reloaded.HoursWorked)
	assert.True(t, reloaded.IsPto)

	require.NoError(t, db.Model(&models.TimeEntry{}).
		Where("entry_id = ?", entry.EntryID).
		Update("is_locked", true).Error)

	resp, err = app.Test(jsonRequest(t, "PUT", "/time-entries/1", TimeEntryRequest{
		EmployeeID:  "EMP001",
		HoursWorked: 4,
	}))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	require.NoError(t, db.First(&reloaded, "entry_id = ?", entry.EntryID).Error)
	assert.Equal(t, 6.0, reloaded.HoursWorked)
}

func TestDeleteTimeEntryEndpointRespectsLock(t *testing.T) {
	app, db := setupTest(t)
	app.Delete("/time-entries/:id", DeleteTimeEntry)

	seedEmployee(t, db, "EMP001")
	locked := models.TimeEntry{
		EmployeeID:  "EMP001",
		WorkDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		HoursWorked: 8,
		IsLocked:    true,
	}
	require.NoError(t, db.Create(&locked).Error)
	open := models.TimeEntry{
		EmployeeID:  "EMP001",
		WorkDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		HoursWorked: 8,
	}
	require.NoError(t, db.Create(&open).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/time-entries/1", nil))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/time-entries/2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/time-entries/99", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.TimeEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetTimeEntriesEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Get("/time-entries", GetTimeEntries)

	seedEmployee(t, db, "EMP001")
	for day := 1; day <= 3; day++ {
		require.NoError(t, db.Create(&models.TimeEntry{
			EmployeeID:  "EMP001",
			WorkDate:    time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			HoursWorked: 8,
		}).Error)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/time-entries?employee_id=EMP001", nil))
	require.NoError(t, err)
	body := decodeResponse(t, resp)
	assert.Len(t, body["data"].([]interface{}), 3)

	resp, err = app.Test(httptest.NewRequest("GET", "/time-entries?employee_id=EMP001&start=2024-03-02&end=2024-03-03", nil))
	require.NoError(t, err)
	body = decodeResponse(t, resp)
	assert.Len(t, body["data"].([]interface{}), 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/time-entries", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
