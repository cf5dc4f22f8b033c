package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/services"
	"github.com/habitown/habitown-backend/pkg/logger"
)

// Rebuilds balances from completions, trades and coin facts. With -user
// it repairs a single account, otherwise the whole table.
func main() {
	userID := flag.Int64("user", 0, "repair a single user id (0 = everyone)")
	flag.Parse()

	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	var diffs []services.BalanceDiff
	if *userID != 0 {
		diff, err := services.RecalculateUser(*userID)
		if err != nil {
			log.Fatalf("Recalculation failed: %v", err)
		}
		diffs = []services.BalanceDiff{*diff}
	} else {
		var err error
		diffs, err = services.RecalculateAll()
		if err != nil {
			log.Fatalf("Recalculation failed: %v", err)
		}
	}

	changed := 0
	for _, d := range diffs {
		if !d.Changed {
			continue
		}
		changed++
		fmt.Printf("user %d:\n", d.UserID)
		fmt.Printf("  before: %+v\n", d.Before)
		fmt.Printf("  after:  %+v\n", d.After)
	}
	fmt.Printf("%d users checked, %d corrected\n", len(diffs), changed)
}
