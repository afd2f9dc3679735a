package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ReadAllFromURL reads at most `maxSize` bytes of content from the URL. Larger bodies fail instead of being
// truncated silently.
func ReadAllFromURL(ctx context.Context, client *http.Client, url string, maxSize int64) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: status %s", url, res.Status)
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxSize {
		return nil, fmt.Errorf("GET %s: content exceeds %d bytes", url, maxSize)
	}
	return content, nil
}
