package main

import (
	"flag"
	"os"
	"time"

	"github.com/talika/judgeboard/internal/seed"
)

const defaultStudents = 200

func main() {
	var (
		students = flag.Int("students", defaultStudents, "Number of registrations to generate")
		output   = flag.String("output", "fixtures.json", "Output file for generated fixtures")
		seedVal  = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	cfg := &seed.Config{
		Students:   *students,
		OutputFile: *output,
		Seed:       *seedVal,
	}
	if err := seed.Run(cfg); err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
