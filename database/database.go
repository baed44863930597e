package database

import (
	"log"

	"github.com/hisbanh/rekapabsensi/config"
	"github.com/hisbanh/rekapabsensi/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	// ----- AutoMigrate seluruh skema -----
	if err := DB.AutoMigrate(
		&models.DaySchedule{},
		&models.Classroom{},
		&models.Student{},
		&models.Holiday{},
		&models.DailyAttendance{},
		&models.User{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	seedDaySchedules()
}

// seedDaySchedules menanam 7 baris jadwal hari sekali saja (FirstOrCreate per
// day_of_week). Default: Senin-Kamis 6 JP, Jumat 4, Sabtu 6, Minggu libur.
func seedDaySchedules() {
	defaults := []models.DaySchedule{
		{DayOfWeek: 0, DayName: "Senin", DefaultJPCount: 6, IsSchoolDay: true},
		{DayOfWeek: 1, DayName: "Selasa", DefaultJPCount: 6, IsSchoolDay: true},
		{DayOfWeek: 2, DayName: "Rabu", DefaultJPCount: 6, IsSchoolDay: true},
		{DayOfWeek: 3, DayName: "Kamis", DefaultJPCount: 6, IsSchoolDay: true},
		{DayOfWeek: 4, DayName: "Jumat", DefaultJPCount: 4, IsSchoolDay: true},
		{DayOfWeek: 5, DayName: "Sabtu", DefaultJPCount: 6, IsSchoolDay: true},
		{DayOfWeek: 6, DayName: "Minggu", DefaultJPCount: 0, IsSchoolDay: false},
	}
	for _, d := range defaults {
		var row models.DaySchedule
		if err := DB.Where("day_of_week = ?", d.DayOfWeek).
			Attrs(models.DaySchedule{
				DayName:        d.DayName,
				DefaultJPCount: d.DefaultJPCount,
				IsSchoolDay:    d.IsSchoolDay,
			}).
			FirstOrCreate(&row).Error; err != nil {
			log.Printf("[seed] day schedule %s failed: %v", d.DayName, err)
		}
	}
}
