package main

import (
	"fmt"
	"net/http"

	"github.com/attend-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/attend-hq/attendance-backend-go/internal/handler/http"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/attend-hq/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attend-hq/attendance-backend-go/internal/service/attendance"
	authService "github.com/attend-hq/attendance-backend-go/internal/service/auth"
	employeeService "github.com/attend-hq/attendance-backend-go/internal/service/employee"
	holidayService "github.com/attend-hq/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/attend-hq/attendance-backend-go/internal/service/leave"
	officeService "github.com/attend-hq/attendance-backend-go/internal/service/office"
	qrcodeService "github.com/attend-hq/attendance-backend-go/internal/service/qrcode"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	workedHoursRepo := postgresql.NewWorkedHoursRepository(db)
	qrCodeRepo := postgresql.NewQRCodeRepository(db)
	officeLocationRepo := postgresql.NewOfficeLocationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, employeeRepo, refreshTokenRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		activityRepo,
		workedHoursRepo,
		officeLocationRepo,
		qrCodeRepo,
		employeeRepo,
		cfg.Attendance.GeofenceRadiusMeters,
	)
	qrCodeSvc := qrcodeService.NewQRCodeService(db, qrCodeRepo)
	officeSvc := officeService.NewLocationService(db, officeLocationRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	qrCodeHandler := appHTTP.NewQRCodeHandler(qrCodeSvc)
	officeHandler := appHTTP.NewOfficeHandler(officeSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		attendanceHandler,
		qrCodeHandler,
		officeHandler,
		holidayHandler,
		leaveHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
