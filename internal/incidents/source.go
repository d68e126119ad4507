package incidents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"
)

func init() {
	// The TUI owns the terminal; go-redis must not print to it.
	redis.SetLogger(&logging.VoidLogger{})
}

// Source opens the raw CSV stream of a dataset.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// String returns a display form with credentials removed.
	String() string
}

// NewSource resolves a path or URL into a Source. Supported forms are a
// local file path (optionally file://), http(s)://, and
// redis://host:port/db?key=name where the key holds the CSV text.
func NewSource(location string, timeout time.Duration) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("empty data source")
	}

	parsed, err := url.Parse(location)
	if err != nil || parsed.Scheme == "" || len(parsed.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return fileSource{path: location}, nil
	}

	switch parsed.Scheme {
	case "file":
		return fileSource{path: parsed.Path}, nil
	case "http", "https":
		return httpSource{
			url:    location,
			client: &http.Client{Timeout: timeout},
		}, nil
	case "redis", "rediss":
		return newRedisSource(parsed, timeout)
	default:
		return nil, fmt.Errorf("unsupported data source scheme %q", parsed.Scheme)
	}
}

type fileSource struct {
	path string
}

func (s fileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s fileSource) String() string {
	return s.path
}

type httpSource struct {
	url    string
	client *http.Client
}

func (s httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func (s httpSource) String() string {
	return sanitizeURL(s.url)
}

type redisSource struct {
	client  *redis.Client
	key     string
	display string
}

func newRedisSource(parsed *url.URL, timeout time.Duration) (redisSource, error) {
	query := parsed.Query()
	key := query.Get("key")
	if key == "" {
		return redisSource{}, errors.New("redis source requires a key query parameter")
	}
	query.Del("key")
	connURL := *parsed
	connURL.RawQuery = query.Encode()

	opts, err := redis.ParseURL(connURL.String())
	if err != nil {
		return redisSource{}, fmt.Errorf("parse redis url: %w", err)
	}
	opts.MaxRetries = -1
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	opts.PoolSize = 1

	return redisSource{
		client:  redis.NewClient(opts),
		key:     key,
		display: sanitizeURL(parsed.String()),
	}, nil
}

// Open reads the key once and closes the connection; the loader never
// reads a dataset twice.
func (s redisSource) Open(ctx context.Context) (io.ReadCloser, error) {
	defer func() {
		_ = s.client.Close()
	}()
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis key %q not found", s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", s.key, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s redisSource) String() string {
	return s.display
}

func sanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = nil
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}
