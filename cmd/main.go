package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hisbanh/rekapabsensi/config"
	"github.com/hisbanh/rekapabsensi/database"
	"github.com/hisbanh/rekapabsensi/routes"
)

func main() {
	cfg := config.Load()

	// koneksi DB (kalau DB belum siap, program langsung mati — early fail)
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
