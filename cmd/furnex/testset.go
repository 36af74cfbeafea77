package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
)

// Run executes the testset command.
func (c *TestsetCmd) Run(deps *Dependencies) error {
	cases, err := deps.Batch.CreateTestSet(deps.Ctx, furnex.TestSetOptions{
		SampleSize: c.Size,
		Seed:       c.Seed,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created test set with %d cases from %d sampled URLs\n", len(cases), c.Size)
	if deps.Config != nil {
		fmt.Fprintf(deps.Stdout, "Review the labels in %s before evaluating\n", deps.Config.TestSetPath())
	}
	return nil
}
