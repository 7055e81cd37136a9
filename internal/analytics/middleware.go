package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Retention is how long visits are kept before Cleanup removes them.
const Retention = 365 * 24 * time.Hour

const trackTimeout = 5 * time.Second

var untracked = []string{"/static/", "/images/", "/favicon", "/privacy", "/metrics", "/healthz", "/api/", "/globe.svg", "/sections/"}

// Tracked reports whether a request path counts as a page view.
func Tracked(path string) bool {
	for _, p := range untracked {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Middleware records page views in the background. Requests carrying
// DNT: 1 are never recorded.
func Middleware(s *Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || !Tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := s.Track(ctx, ip, ua, path); err != nil {
				log.Warn("recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// Janitor runs Cleanup once immediately and then every interval until ctx
// is done.
func (s *Store) Janitor(ctx context.Context, interval time.Duration, log *zap.Logger) {
	sweep := func() {
		n, err := s.Cleanup(ctx, Retention)
		if err != nil {
			log.Warn("privacy cleanup failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("privacy cleanup", zap.Int64("removed", n))
		}
	}

	sweep()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			sweep()
		}
	}
}
