// Command task_cleanup removes completed housekeeping tasks older than a
// retention window. Meant to run from cron.
package main

import (
	"flag"
	"log"
	"time"

	"luxurystay/internal/config"
	"luxurystay/internal/database"
	"luxurystay/internal/domain"
)

func main() {
	olderThan := flag.Duration("older-than", 7*24*time.Hour, "delete completed tasks not updated for this long")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().UTC().Add(-*olderThan)
	res := db.Where("status = ? AND updated_at < ?", domain.TaskCompleted, cutoff).Delete(&domain.Task{})
	if res.Error != nil {
		log.Fatalf("cleanup tasks failed: %v", res.Error)
	}

	log.Printf("task cleanup completed: tasks=%d cutoff=%s", res.RowsAffected, cutoff.Format(time.RFC3339))
}
