package main

import (
	"log"

	"payroll_backend/config"
	"payroll_backend/handlers"
	"payroll_backend/middleware"
	"payroll_backend/models"
	"payroll_backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func initDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Employee{},
		&models.TimeEntry{},
		&models.PayrollRecord{},
		&models.User{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdminUser creates the admin account on first start so the system is
// reachable before any employee exists.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(utils.SeedPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:             "admin",
		PasswordHash:       hash,
		UserType:           models.UserTypeAdmin,
		MustChangePassword: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.Logger.Info("seeded admin user", zap.String("user_id", admin.UserID))
	return nil
}

func setupRoutes(app *fiber.App) {
	app.Post("/auth/login", handlers.Login)
	app.Post("/auth/change-password", middleware.RequireAuth, handlers.ChangePassword)

	employees := app.Group("/employees", middleware.RequireAdmin)
	employees.Get("/", handlers.GetAllEmployees)
	employees.Post("/", handlers.AddEmployee)
	employees.Get("/:id", handlers.GetEmployee)
	employees.Put("/:id", handlers.UpdateEmployee)
	employees.Delete("/:id", handlers.DeleteEmployee)
	employees.Get("/:id/payroll-records", handlers.GetEmployeePayrollRecords)

	entries := app.Group("/time-entries", middleware.RequireAuth)
	entries.Get("/", handlers.GetTimeEntries)
	entries.Post("/", handlers.CreateTimeEntry)
	entries.Put("/:id", handlers.UpdateTimeEntry)
	entries.Delete("/:id", handlers.DeleteTimeEntry)

	payroll := app.Group("/payroll", middleware.RequireAdmin)
	payroll.Post("/process", handlers.ProcessPayroll)
	payroll.Get("/records", handlers.GetPayrollRecords)
	payroll.Get("/preview", handlers.PreviewPayroll)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()

	db, err := initDatabase()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := seedAdminUser(db); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	handlers.InitHandlers(db)

	app := fiber.New()
	setupRoutes(app)

	utils.Logger.Info("starting server", zap.String("port", config.AppConfig.Port))
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
