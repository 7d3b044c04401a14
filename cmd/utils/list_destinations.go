package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/infrastructure/config"
	"schedule-crawler/internal/infrastructure/httpclient"
	"schedule-crawler/internal/interface/repository"
)

// Prints the listing of one origin city, one destination per line, to check
// that the page still has the expected structure.
func main() {
	city := flag.String("city", "bjs", "origin city code")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	client := httpclient.NewClient(httpclient.Options{UserAgent: cfg.UserAgent, Timeout: cfg.HTTPTimeout})
	origin := entity.NormalizeCityCode(*city)

	fmt.Println("GET", repository.ListingURL(cfg.BaseURL, origin))

	destinations, err := repository.NewCtripListingRepository(client, cfg.BaseURL).Destinations(ctx, origin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read listing:", err)
		os.Exit(1)
	}

	for _, d := range destinations {
		code, err := entity.ParseDestinationCode(d.Link)
		if err != nil {
			fmt.Printf("%s\t%s\t(unparseable link)\n", d.Name, d.Link)
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", d.Name, d.Link, code)
	}

	fmt.Printf("%d destinations\n", len(destinations))
}
