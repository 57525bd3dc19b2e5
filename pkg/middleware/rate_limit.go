package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"vistos/pkg/logger"
)

type clientWindow struct {
	count       int
	windowStart time.Time
}

// ClientRateLimiter applies a fixed-window request limit per client IP.
type ClientRateLimiter struct {
	maxRequests int
	window      time.Duration
	log         *logger.Logger

	mu      sync.Mutex
	clients map[string]*clientWindow

	stop chan struct{}
	once sync.Once
}

func NewClientRateLimiter(maxRequests int, window time.Duration, log *logger.Logger) *ClientRateLimiter {
	rl := &ClientRateLimiter{
		maxRequests: maxRequests,
		window:      window,
		log:         log,
		clients:     make(map[string]*clientWindow),
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()
	return rl
}

func (rl *ClientRateLimiter) Allow(clientKey string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[clientKey]
	if !ok || now.Sub(cw.windowStart) >= rl.window {
		rl.clients[clientKey] = &clientWindow{count: 1, windowStart: now}
		return true
	}

	if cw.count >= rl.maxRequests {
		return false
	}
	cw.count++
	return true
}

func (rl *ClientRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.window)
			rl.mu.Lock()
			for key, cw := range rl.clients {
				if cw.windowStart.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *ClientRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func ClientRateLimit(rl *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !rl.Allow(key) {
				rl.log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"client", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
