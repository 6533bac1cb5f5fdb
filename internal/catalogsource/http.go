package catalogsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"plan-engine/internal/catalog"
)

var client = &http.Client{
	Timeout: 2 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

func fetchHTTP(ctx context.Context, rawURL string) ([]byte, catalog.Format, error) {
	if rawURL == "" {
		return nil, "", fmt.Errorf("PLAN_CATALOG_URL required for http source")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("catalog request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, "", fmt.Errorf("fetch catalog: %s returned %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog body: %w", err)
	}

	format, err := catalog.ParseFormat(resp.Header.Get("Content-Type"))
	if err != nil || format == catalog.FormatJSON {
		// Generic content types fall back to the path extension.
		if u, perr := url.Parse(rawURL); perr == nil {
			format = catalog.FormatFromPath(u.Path)
		}
	}
	return data, format, nil
}
