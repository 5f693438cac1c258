package main

import (
	"fmt"
	"os"

	climate "github.com/servirtium/demo-go-climate-data-tck"
)

// Records a fixture from the live World Bank API, then replays it offline.
// Run with CLIMATE_API_BASE_URL set to target an emulated service instead.
func main() {
	const fixture = "average_Rainfall_For_Great_Britain_From_1980_to_1999_Exists"

	rec, err := climate.New(&climate.Options{Mode: climate.Record, Fixture: fixture})
	if err != nil {
		fail(err)
	}
	live, err := rec.AverageAnnualRainfall(1980, 1999, "gbr")
	if err != nil {
		fail(err)
	}
	if err := rec.Close(); err != nil {
		fail(err)
	}
	fmt.Printf("recorded: gbr 1980-1999 averaged %.2f mm/year\n", live)

	play, err := climate.New(&climate.Options{Mode: climate.Playback, Fixture: fixture})
	if err != nil {
		fail(err)
	}
	defer play.Close()
	replayed, err := play.AverageAnnualRainfall(1980, 1999, "gbr")
	if err != nil {
		fail(err)
	}
	fmt.Printf("replayed: gbr 1980-1999 averaged %.2f mm/year\n", replayed)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
