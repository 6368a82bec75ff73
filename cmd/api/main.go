package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kasirapp/pos-backend-go/internal/config"
	appHTTP "github.com/kasirapp/pos-backend-go/internal/handler/http"
	"github.com/kasirapp/pos-backend-go/internal/pkg/database"
	"github.com/kasirapp/pos-backend-go/internal/pkg/jwt"
	"github.com/kasirapp/pos-backend-go/internal/repository/postgresql"
	payrollService "github.com/kasirapp/pos-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	staffRepo := postgresql.NewStaffRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollSettingRepo := postgresql.NewPayrollSettingRepository(db)
	payrollPeriodRepo := postgresql.NewPayrollPeriodRepository(db)
	payrollDetailRepo := postgresql.NewPayrollDetailRepository(db)
	expenseCategoryRepo := postgresql.NewExpenseCategoryRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		logger,
		payrollSettingRepo,
		payrollPeriodRepo,
		payrollDetailRepo,
		staffRepo,
		salaryRepo,
		attendanceRepo,
		expenseCategoryRepo,
		expenseRepo,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(jwtService, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
