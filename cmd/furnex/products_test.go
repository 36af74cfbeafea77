package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/furnex"
	main "github.com/fwojciec/furnex/cmd/furnex"
	"github.com/fwojciec/furnex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists stored products for the normalized URL", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Products: &mock.ProductService{
				FindProductsFn: func(ctx context.Context, url string) ([]*furnex.Product, error) {
					gotURL = url
					return []*furnex.Product{
						{URL: url, Name: "диван Милан серый", Confidence: 0.7},
						{URL: url, Name: "стол", Confidence: 0.6},
					}, nil
				},
			},
		}

		err := (&main.ProductsCmd{URL: "mebel.example.ru/divany"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://mebel.example.ru/divany", gotURL)
		assert.Equal(t, "0.70  диван Милан серый\n0.60  стол\n", stdout.String())
	})

	t.Run("nothing stored", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Products: &mock.ProductService{
				FindProductsFn: func(ctx context.Context, url string) ([]*furnex.Product, error) { return nil, nil },
			},
		}

		err := (&main.ProductsCmd{URL: "https://a.example"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No products stored for https://a.example")
	})

	t.Run("invalid URL", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Products: &mock.ProductService{},
		}

		err := (&main.ProductsCmd{URL: "  "}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: URL required\n", stderr.String())
	})
}
