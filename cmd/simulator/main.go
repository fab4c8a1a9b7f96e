package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	serverURL    = flag.String("server", "http://localhost:8080", "ParkPass server base URL")
	businessName = flag.String("business", "Garage Central", "Venue name to simulate")
	customers    = flag.Int("customers", 1, "Number of customers to run through the full flow")
	skipComplete = flag.Bool("skip-complete", false, "Leave sessions validated instead of completing them")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim := NewSimulator(&SimulatorConfig{
		ServerURL:    *serverURL,
		BusinessName: *businessName,
		Customers:    *customers,
		SkipComplete: *skipComplete,
	}, logger)

	if err := sim.Run(); err != nil {
		logger.Fatal("Simulation failed", zap.Error(err))
	}

	logger.Info("Simulation finished")
}
