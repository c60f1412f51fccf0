package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrStatus   = errors.New("unexpected http status")
)

// Getter performs timeout-bounded, retried GET requests with an optional
// disk cache in front.
type Getter struct {
	HTTP      *http.Client
	Timeout   time.Duration // per attempt
	Retries   int           // attempts after the first
	Backoff   time.Duration // multiplied by the attempt number
	UserAgent string
	Cache     DiskCache
	Log       *slog.Logger
}

// NewGetter returns a Getter with conservative defaults.
func NewGetter(log *slog.Logger) *Getter {
	if log == nil {
		log = slog.Default()
	}
	return &Getter{
		HTTP:      &http.Client{},
		Timeout:   10 * time.Second,
		Retries:   2,
		Backoff:   time.Second,
		UserAgent: "gene_weaver",
		Log:       log,
	}
}

// Get fetches url, consulting the cache under namespace/key first. An empty
// namespace bypasses the cache.
func (g *Getter) Get(ctx context.Context, namespace, key, url string) ([]byte, error) {
	if namespace != "" {
		if payload, ok := g.Cache.Get(namespace, key); ok {
			g.Log.Debug("cache hit", "namespace", namespace, "key", key)
			return payload, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= g.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * g.Backoff):
			}
		}
		body, err := g.once(ctx, url)
		if err == nil {
			if namespace != "" {
				if err := g.Cache.Put(namespace, key, body); err != nil {
					g.Log.Warn("cache write failed", "namespace", namespace, "key", key, "err", err)
				}
			}
			return body, nil
		}
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		g.Log.Debug("request failed", "url", url, "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}

func (g *Getter) once(ctx context.Context, url string) ([]byte, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	client := g.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w (%s)", ErrNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d (%s)", ErrStatus, resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if isGzip(body) {
		return gunzip(body)
	}
	return body, nil
}

func isGzip(body []byte) bool {
	return len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b
}

func gunzip(body []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
