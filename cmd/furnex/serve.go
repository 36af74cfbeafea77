package main

import (
	"fmt"

	"github.com/fwojciec/furnex"
	fxhttp "github.com/fwojciec/furnex/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := fxhttp.NewServer()
	s.Addr = c.Addr
	s.Pages = deps.Pages
	s.Products = deps.Products
	s.Batches = deps.Batch
	s.TestSets = deps.TestSets
	s.Evaluator = deps.Eval
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}
	if deps.Config != nil {
		s.BatchSize = deps.Config.Batch.Size
	}

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furnex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
