package goquery_test

import (
	"testing"

	"github.com/fwojciec/furnex"
	"github.com/fwojciec/furnex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Text(t *testing.T) {
	t.Parallel()

	t.Run("drops non-content elements", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Мебель</title><meta name="description" content="скрыто"></head>
<body>
<script>var sofa = "диван";</script>
<style>.sofa { color: red }</style>
<noscript>Включите JavaScript</noscript>
<nav>Каталог</nav>
<div class="card">
  <h2>Диван "Милан"</h2>
  <p>Цена: 45 000 руб.</p>
</div>
</body>
</html>`

		text, err := goquery.NewConverter().Text(html)

		require.NoError(t, err)
		assert.Equal(t, `Каталог Диван "Милан" Цена: 45 000 руб.`, text)
	})

	t.Run("splits on double spaces", func(t *testing.T) {
		t.Parallel()

		text, err := goquery.NewConverter().Text(`<p>Sofa Oslo    grey   fabric</p>`)

		require.NoError(t, err)
		assert.Equal(t, "Sofa Oslo grey fabric", text)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewConverter().Text("  \n ")
		assert.Equal(t, furnex.EINVALID, furnex.ErrorCode(err))
	})

	t.Run("page with no text", func(t *testing.T) {
		t.Parallel()

		text, err := goquery.NewConverter().Text(`<html><head><title>x</title></head><body><script>1</script></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "lines", in: "  Диван  \n\n  Кресло\r\n", want: "Диван Кресло"},
		{name: "single spaces kept", in: "стол журнальный Вена", want: "стол журнальный Вена"},
		{name: "double spaces split", in: "стол  журнальный", want: "стол журнальный"},
		{name: "nfc", in: "\u0438\u0306", want: "\u0439"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.Collapse(tt.in))
		})
	}
}
