package handlers

import (
	"errors"
	"time"

	"payroll_backend/config"
	"payroll_backend/models"
	"payroll_backend/types"
	"payroll_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Login verifies credentials and issues a JWT. The response tells the
// client whether a password change is still pending.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(401).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
		}
		utils.Logger.Error("Failed to fetch user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	expiry, err := time.ParseDuration(config.AppConfig.TokenExpiryDuration)
	if err != nil {
		expiry = 24 * time.Hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     user.UserID,
		"user_type":   user.UserType,
		"employee_id": user.EmployeeID,
		"exp":         time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		utils.Logger.Error("Failed to sign token", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"token":                signed,
			"user_type":            user.UserType,
			"employee_id":          user.EmployeeID,
			"must_change_password": user.MustChangePassword,
		},
	})
}

// ChangePassword replaces the caller's password and clears the must-change
// flag set at onboarding. The new password must satisfy the account policy.
func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUnauthorized,
		})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ?", userID).Error; err != nil {
		utils.Logger.Error("Failed to fetch user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if !utils.CheckPassword(req.OldPassword, user.PasswordHash) {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	err = DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":        hash,
			"must_change_password": false,
		}).Error
	if err != nil {
		utils.Logger.Error("Failed to update password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Password changed successfully",
	})
}
