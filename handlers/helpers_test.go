package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"payroll_backend/config"
	"payroll_backend/models"
	"payroll_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	if utils.Logger == nil {
		utils.InitLogger()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.TimeEntry{},
		&models.PayrollRecord{},
		&models.User{},
	))

	InitHandlers(db)
	return fiber.New(), db
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var generic map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&generic))
	return generic
}
