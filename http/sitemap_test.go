package http_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/furnex"
	furnexhttp "github.com/fwojciec/furnex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlsetHeader = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`

func urlset(paths ...string) string {
	var b strings.Builder
	b.WriteString(urlsetHeader)
	for _, p := range paths {
		b.WriteString("<url><loc>{{BASE}}" + p + "</loc></url>")
	}
	b.WriteString("</urlset>")
	return b.String()
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content map[string]string
		path    string
		filter  *furnex.URLFilter
		want    []string
	}{
		{
			name: "sitemap from robots.txt",
			content: map[string]string{
				"/robots.txt":  "User-agent: *\nDisallow: /cart/\nSitemap: {{BASE}}/sitemap.xml\n",
				"/sitemap.xml": urlset("/catalog/divany", "/catalog/kresla"),
			},
			want: []string{"/catalog/divany", "/catalog/kresla"},
		},
		{
			name: "lowercase directive",
			content: map[string]string{
				"/robots.txt":   "sitemap: {{BASE}}/products.xml\n",
				"/products.xml": urlset("/sofa-milan"),
			},
			want: []string{"/sofa-milan"},
		},
		{
			name: "falls back to sitemap.xml",
			content: map[string]string{
				"/sitemap.xml": urlset("/sofa-milan"),
			},
			want: []string{"/sofa-milan"},
		},
		{
			name: "follows sitemap index",
			content: map[string]string{
				"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-sofas.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-tables.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
</sitemapindex>`,
				"/sitemap-sofas.xml":  urlset("/sofa-milan", "/sofa-oslo"),
				"/sitemap-tables.xml": urlset("/table-oslo", "/sofa-milan"),
			},
			want: []string{"/sofa-milan", "/sofa-oslo", "/table-oslo"},
		},
		{
			name: "multiple sitemaps in robots.txt",
			content: map[string]string{
				"/robots.txt": "Sitemap: {{BASE}}/a.xml\nSitemap: {{BASE}}/b.xml\n",
				"/a.xml":      urlset("/1"),
				"/b.xml":      urlset("/2"),
			},
			want: []string{"/1", "/2"},
		},
		{
			name: "base path restricts URLs",
			content: map[string]string{
				"/sitemap.xml": urlset("/catalog", "/catalog/divany", "/catalogue/old", "/about"),
			},
			path: "/catalog/",
			want: []string{"/catalog", "/catalog/divany"},
		},
		{
			name: "include filter",
			content: map[string]string{
				"/sitemap.xml": urlset("/catalog/divany", "/blog/post", "/catalog/stoly"),
			},
			filter: &furnex.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/catalog/`)}},
			want:   []string{"/catalog/divany", "/catalog/stoly"},
		},
		{
			name: "exclude filter",
			content: map[string]string{
				"/sitemap.xml": urlset("/catalog/divany", "/catalog/sale/old", "/catalog/stoly"),
			},
			filter: &furnex.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/sale/`)}},
			want:   []string{"/catalog/divany", "/catalog/stoly"},
		},
		{
			name:    "no sitemap",
			content: map[string]string{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, tt.content)
			defer srv.Close()

			svc := furnexhttp.NewSitemapService(srv.Client())
			urls, err := svc.DiscoverURLs(context.Background(), srv.URL+tt.path, tt.filter)

			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, p := range tt.want {
				want[i] = srv.URL + p
			}
			assert.Equal(t, want, urls)
		})
	}
}

func TestSitemapService_DiscoverURLs_Gzip(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("Sitemap: " + srv.URL + "/sitemap.xml.gz\n"))
		case "/sitemap.xml.gz":
			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			_, _ = gz.Write([]byte(replaceBaseURL(urlset("/sofa-milan"), srv.URL)))
			_ = gz.Close()
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(buf.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	urls, err := furnexhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/sofa-milan"}, urls)
}

func TestSitemapService_DiscoverURLs_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := furnexhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "not a url", nil)
		assert.Equal(t, furnex.EINVALID, furnex.ErrorCode(err))
	})

	t.Run("malformed sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": "<urlset <<< broken"})
		defer srv.Close()

		_, err := furnexhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)
		assert.Error(t, err)
	})

	t.Run("missing child sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/gone.xml\n",
		})
		defer srv.Close()

		_, err := furnexhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)
		assert.Equal(t, furnex.EUNAVAILABLE, furnex.ErrorCode(err))
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": urlset("/1")})
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := furnexhttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

// newTestServer serves content by path. {{BASE}} in content is replaced
// with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(replaceBaseURL(body, srv.URL)))
	}))
	return srv
}

func replaceBaseURL(content, baseURL string) string {
	return strings.ReplaceAll(content, "{{BASE}}", baseURL)
}
