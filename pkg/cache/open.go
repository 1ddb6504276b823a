package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open returns the backend named by rawURL:
//
//   - "" or "none": NullCache
//   - "file:///dir" or a plain path: FileCache
//   - "redis://..." or "rediss://...": RedisCache
//   - "mongodb://..." or "mongodb+srv://...": MongoCache
func Open(ctx context.Context, rawURL string) (Cache, error) {
	if rawURL == "" || rawURL == "none" {
		return NewNullCache(), nil
	}

	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return NewFileCache(rawURL)
	}

	switch strings.ToLower(scheme) {
	case "file":
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse cache url: %w", err)
		}
		dir := u.Path
		if dir == "" {
			dir = rest
		}
		return NewFileCache(dir)
	case "redis", "rediss":
		return NewRedisCache(ctx, rawURL)
	case "mongodb", "mongodb+srv":
		return NewMongoCache(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, scheme)
	}
}
