package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/crawl"
)

// Run executes the products command.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	pageURL, err := crawl.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	products, err := deps.Products.FindProducts(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	if len(products) == 0 {
		fmt.Fprintf(deps.Stdout, "No products stored for %s. Use 'furnex extract' first.\n", pageURL)
		return nil
	}

	for _, p := range products {
		fmt.Fprintf(deps.Stdout, "%.2f  %s\n", p.Confidence, p.Name)
	}
	return nil
}
