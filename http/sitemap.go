package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/furnex"
)

// maxIndexDepth bounds how deep nested sitemap indexes are followed.
const maxIndexDepth = 5

// Ensure SitemapService implements furnex.SitemapService.
var _ furnex.SitemapService = (*SitemapService)(nil)

// SitemapService lists shop pages from robots.txt and sitemap XML.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: furnex.DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL,
// without repeats and in sitemap order. Returns an empty slice if the site
// has no sitemap.
//
// A baseURL with a path, such as https://shop.example.com/catalog, keeps
// only URLs under that path.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *furnex.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" {
		return nil, furnex.Errorf(furnex.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalker{svc: s, visited: make(map[string]bool), listed: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm, 0); err != nil {
			return nil, err
		}
	}

	urls := []string{}
	for _, u := range w.urls {
		if prefix != "" && !underPath(u, prefix) {
			continue
		}
		if filter != nil && !filter.Match(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// underPath reports whether rawURL's path is prefix or lies below it.
// /catalog matches /catalog and /catalog/sofas but not /catalogue.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// locateSitemaps reads Sitemap: lines from robots.txt and falls back to
// /sitemap.xml when there are none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if found, err := s.robotsSitemaps(ctx, robots); err == nil && len(found) > 0 {
		return found, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps returns the Sitemap: directives of a robots.txt file.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.open(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// sitemapWalker collects page URLs across sitemaps and indexes.
type sitemapWalker struct {
	svc     *SitemapService
	visited map[string]bool
	listed  map[string]bool
	urls    []string
}

func (w *sitemapWalker) walk(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || depth > maxIndexDepth {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.parse(ctx, sitemapURL)
	if err != nil {
		return err
	}

	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locs(root, "sitemap") {
			if err := w.walk(ctx, loc, depth+1); err != nil {
				return err
			}
		}
	default:
		for _, loc := range locs(root, "url") {
			if !w.listed[loc] {
				w.listed[loc] = true
				w.urls = append(w.urls, loc)
			}
		}
	}
	return nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// parse fetches a sitemap and returns its root element. Gzipped sitemaps
// (*.xml.gz) are decompressed.
func (s *SitemapService) parse(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.open(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, furnex.Errorf(furnex.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, furnex.Errorf(furnex.EINVALID, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

// open GETs targetURL and returns the body of a 200 response.
func (s *SitemapService) open(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := s.request(ctx, http.MethodGet, targetURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, furnex.Errorf(furnex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request to targetURL returns 200 OK.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := s.request(ctx, http.MethodHead, targetURL)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (s *SitemapService) request(ctx context.Context, method, targetURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return req, nil
}
