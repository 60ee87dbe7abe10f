package main

import (
	"fmt"
	"net/http"

	"github.com/zeai-hr/timecore-backend-go/internal/config"
	appHTTP "github.com/zeai-hr/timecore-backend-go/internal/handler/http"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/database"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/jwt"
	"github.com/zeai-hr/timecore-backend-go/internal/repository/postgresql"
	attendanceService "github.com/zeai-hr/timecore-backend-go/internal/service/attendance"
	employeeService "github.com/zeai-hr/timecore-backend-go/internal/service/employee"
	leaveService "github.com/zeai-hr/timecore-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.FrontendURL,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
