package main

import (
	"flag"
	"log"
	"time"

	"github.com/jengzang/accident-hotspots-go/internal/config"
	"github.com/jengzang/accident-hotspots-go/internal/database"
	"github.com/jengzang/accident-hotspots-go/internal/loader"
	"github.com/jengzang/accident-hotspots-go/internal/repository"
)

func main() {
	cfg := config.Load()

	path := flag.String("file", cfg.DataPath, "GeoJSON file with accident points")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	appendMode := flag.Bool("append", false, "append to the stored accidents instead of replacing them")
	flag.Parse()

	if err := database.Init(database.Config{Path: *dbPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	periods, err := loader.NewPeriodClassifier(cfg.Timezone, cfg.DayStartHour, cfg.DayEndHour)
	if err != nil {
		log.Fatalf("Invalid period configuration: %v", err)
	}

	start := time.Now()
	result, err := loader.LoadFile(*path, periods)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *path, err)
	}

	repo := repository.NewAccidentRepository(database.GetDB())
	store := repo.ReplaceAll
	if *appendMode {
		store = repo.InsertAccidents
	}
	n, err := store(result.Accidents)
	if err != nil {
		log.Fatalf("Failed to store accidents: %v", err)
	}

	var night int
	for i := range result.Accidents {
		if result.Accidents[i].IsNight() {
			night++
		}
	}
	log.Printf("Imported %d accidents (day: %d, night: %d, skipped: %d) in %v",
		n, n-night, night, result.Skipped, time.Since(start))
}
