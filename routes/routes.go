package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/hisbanh/rekapabsensi/config"
	"github.com/hisbanh/rekapabsensi/database"
	"github.com/hisbanh/rekapabsensi/handlers"
	"github.com/hisbanh/rekapabsensi/middlewares"
	"github.com/hisbanh/rekapabsensi/services"
)

// Register merangkai store -> service -> handler lalu memasang semua rute.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Stores (GORM) =====
	scheduleStore := services.NewGormScheduleStore(database.DB)
	holidayStore := services.NewGormHolidayStore(database.DB)
	classroomStore := services.NewGormClassroomStore(database.DB)
	studentStore := services.NewGormStudentStore(database.DB)
	attendanceStore := services.NewGormAttendanceStore(database.DB)

	// ===== Services =====
	scheduleSvc := services.NewScheduleService(scheduleStore)
	holidaySvc := services.NewHolidayService(holidayStore, classroomStore, scheduleSvc)
	attendanceSvc := services.NewAttendanceService(attendanceStore, studentStore, classroomStore, scheduleSvc, holidaySvc)
	reportSvc := services.NewReportService(attendanceStore, studentStore, classroomStore, scheduleSvc, holidaySvc, cfg.ReportMaxRangeDays)

	// ===== Handlers =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	cls := handlers.NewClassroomHandler()
	std := handlers.NewStudentHandler()
	sch := handlers.NewScheduleHandler(scheduleSvc)
	hol := handlers.NewHolidayHandler(holidaySvc)
	att := handlers.NewAttendanceHandler(attendanceSvc)
	rep := handlers.NewReportHandler(reportSvc)
	exp := handlers.NewExportHandler(reportSvc)
	xls := handlers.NewExcelExportHandler(reportSvc)
	pdf := handlers.NewPDFExportHandler(reportSvc)
	dash := handlers.NewDashboardHandler(reportSvc)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/classrooms", cls.List)
	admin.GET("/classrooms/:id", cls.Get)
	admin.POST("/classrooms", cls.Create)
	admin.PUT("/classrooms/:id", cls.Update)
	admin.DELETE("/classrooms/:id", cls.Delete)

	admin.GET("/students", std.List)
	admin.GET("/students/:id", std.Get)
	admin.POST("/students", std.Create)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)
	admin.POST("/students/import", std.Import)

	admin.GET("/schedule", sch.List)
	admin.PUT("/schedule/:day", sch.Update)

	admin.GET("/holidays", hol.List)
	admin.GET("/holidays/:id", hol.Get)
	admin.POST("/holidays", hol.Create)
	admin.PUT("/holidays/:id", hol.Update)
	admin.DELETE("/holidays/:id", hol.Delete)

	// ===== Teacher (admin juga boleh) =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole("teacher", "admin"))

	teacher.GET("/classrooms", cls.List)
	teacher.GET("/classrooms/:id/students", cls.Students)

	teacher.GET("/schedule", sch.List)
	teacher.GET("/holidays", hol.List)

	teacher.GET("/attendance", att.ListByClassroom)
	teacher.GET("/attendance/student/:id", att.GetStudent)
	teacher.POST("/attendance", att.Save)
	teacher.POST("/attendance/bulk", att.SaveBulk)
	teacher.GET("/attendance/missing", att.Missing)

	teacher.GET("/reports/class/:id", rep.ClassReport)
	teacher.GET("/reports/student/:id", rep.StudentReport)

	teacher.GET("/exports/class/:id/csv", exp.ClassCSV)
	teacher.GET("/exports/student/:id/csv", exp.StudentCSV)
	teacher.GET("/exports/class/:id/excel", xls.ClassExcel)
	teacher.GET("/exports/student/:id/excel", xls.StudentExcel)
	teacher.GET("/exports/class/:id/pdf", pdf.ClassPDF)
	teacher.GET("/exports/student/:id/pdf", pdf.StudentPDF)

	teacher.GET("/dashboard/daily", dash.Daily)
}
