package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/worklane/timekeep-backend-go/internal/config"
	appHTTP "github.com/worklane/timekeep-backend-go/internal/handler/http"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
	"github.com/worklane/timekeep-backend-go/internal/pkg/jwt"
	"github.com/worklane/timekeep-backend-go/internal/repository/postgresql"
	attendanceService "github.com/worklane/timekeep-backend-go/internal/service/attendance"
	timeoffService "github.com/worklane/timekeep-backend-go/internal/service/timeoff"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	timeOffTypeRepo := postgresql.NewTimeOffTypeRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	ledger := timeoffService.NewLedger(allocationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg.Attendance)
	timeOffSvc := timeoffService.NewTimeOffService(db, timeOffTypeRepo, allocationRepo, requestRepo, ledger, attendanceRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	timeOffHandler := appHTTP.NewTimeOffHandler(timeOffSvc)

	router := appHTTP.NewRouter(JWTService, attendanceHandler, timeOffHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
