package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Products.ProductStats(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'furnex extract' or 'furnex batch' first.")
		return nil
	}

	for _, s := range stats {
		fmt.Fprintf(deps.Stdout, "%5d  %s\n", s.Count, s.Name)
	}
	return nil
}

// Run executes the recent command.
func (c *RecentCmd) Run(deps *Dependencies) error {
	scrapes, err := deps.Products.RecentScrapes(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	if len(scrapes) == 0 {
		fmt.Fprintln(deps.Stdout, "No scrapes yet.")
		return nil
	}

	for _, s := range scrapes {
		line := fmt.Sprintf("%s  %-7s  %3d  %s", s.ScrapedAt.Local().Format("2006-01-02 15:04:05"), s.Status, s.ProductsCount, s.URL)
		if s.ErrorMessage != "" {
			line += "  (" + s.ErrorMessage + ")"
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
