package handlers

import (
	"testing"

	"payroll_backend/middleware"
	"payroll_backend/models"
	"payroll_backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, userID, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		UserID:             userID,
		PasswordHash:       hash,
		UserType:           models.UserTypeEmployee,
		EmployeeID:         userID,
		MustChangePassword: true,
	}).Error)
}

func TestLoginEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/auth/login", Login)

	seedUser(t, db, "EMP001", utils.SeedPassword)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/login", LoginRequest{
		UserID:   "EMP001",
		Password: utils.SeedPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeResponse(t, resp)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, true, data["must_change_password"])
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/auth/login", Login)

	seedUser(t, db, "EMP001", utils.SeedPassword)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/login", LoginRequest{
		UserID:   "EMP001",
		Password: "wrong-password",
	}))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/auth/login", LoginRequest{
		UserID:   "EMP404",
		Password: utils.SeedPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestChangePasswordEndpoint(t *testing.T) {
	app, db := setupTest(t)
	app.Post("/auth/login", Login)
	app.Post("/auth/change-password", middleware.RequireAuth, ChangePassword)

	seedUser(t, db, "EMP001", utils.SeedPassword)

	resp, err := app.Test(jsonRequest(t, "POST", "/auth/login", LoginRequest{
		UserID:   "EMP001",
		Password: utils.SeedPassword,
	}))
	require.NoError(t, err)
	token := decodeResponse(t, resp)["data"].(map[string]interface{})["token"].(string)

	req := jsonRequest(t, "POST", "/auth/change-password", ChangePasswordRequest{
		OldPassword: utils.SeedPassword,
		NewPassword: "NewSecret99!",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "EMP001").Error)
	assert.False(t, user.MustChangePassword)
	assert.True(t, utils.CheckPassword("NewSecret99!", user.PasswordHash))
	assert.False(t, utils.CheckPassword(utils.SeedPassword, user.PasswordHash))

	// weak replacement is rejected and leaves the stored hash alone
	req = jsonRequest(t, "POST", "/auth/change-password", ChangePasswordRequest{
		OldPassword: "NewSecret99!",
		NewPassword: "short",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// no token at all
	resp, err = app.Test(jsonRequest(t, "POST", "/auth/change-password", ChangePasswordRequest{
		OldPassword: "NewSecret99!",
		NewPassword: "AnotherOne1!",
	}))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
