package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
	fxhttp "github.com/fwojciec/furnex/http"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	ext, err := deps.Pages.Process(deps.Ctx, c.URL)
	if err != nil {
		if furnex.ErrorCode(err) != furnex.EINVALID {
			if saveErr := deps.Products.SaveError(deps.Ctx, c.URL, err.Error()); saveErr != nil {
				fmt.Fprintf(deps.Stderr, "warning: could not record error: %s\n", furnex.ErrorMessage(saveErr))
			}
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", fxhttp.FriendlyError(err))
		return err
	}

	if err := deps.Products.SaveExtraction(deps.Ctx, ext); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	if len(ext.Candidates) == 0 {
		fmt.Fprintf(deps.Stdout, "No products found on %s\n", ext.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d products on %s\n", len(ext.Candidates), ext.URL)
	for _, cand := range ext.Candidates {
		fmt.Fprintf(deps.Stdout, "  %.2f  %s\n", cand.Confidence, cand.Name)
	}
	return nil
}
