package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
	"github.com/vncsmyrnk/pollbooth/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, owner string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&owner, "owner", "", "Only tally polls of this owner id")
	flag.Parse()

	var filter ports.PollFilter
	if owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			log.Fatalf("invalid owner id %q: %v", owner, err)
		}
		filter.Owner = &id
	}

	db, err := postgres.Connect(postgres.DSN(dbUser, dbPass, dbHost, dbPort, dbName), 15*time.Second)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	reportService := services.NewReportService(postgres.NewPollStore(db, 30*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	board, err := reportService.Leaderboard(ctx, filter)
	if err != nil {
		log.Fatalf("Error tallying votes: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VOTES\tPOLL\tTITLE\tOWNER")
	for _, s := range board {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Votes, s.ID, s.Title, s.Owner)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
