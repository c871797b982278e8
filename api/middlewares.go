package main

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type identityContext string

const identityContextKey identityContext = "identityContextKey"

// identity is what the auth gate attaches to the request context: the claims
// embedded in the bearer token, not a fresh user row.
type identity struct {
	UserID   int
	Username string
}

func getIdentityFromRequest(r *http.Request) *identity {
	id, _ := r.Context().Value(identityContextKey).(*identity)
	return id
}

// requireAuth rejects requests without a usable bearer token before any
// handler logic runs: 401 when no token is supplied, 403 when one is supplied
// but fails verification. Expired and malformed tokens are indistinguishable
// to the client.
func (app *application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authentication token required")
			return
		}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Authentication token required")
			return
		}
		claims, err := verifyToken(app.config.jwtSecret, parts[1])
		if err != nil {
			log.WithField("cause", err.Error()).Debug("token rejected")
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), identityContextKey, &identity{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

type responseRecorder struct {
	status int
	bytes  int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.bytes += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

func logRequests(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := uuid.NewRandom()
		start := time.Now()
		rr := &responseRecorder{w: w}
		next.ServeHTTP(rr, r)
		log.WithFields(logrus.Fields{
			"http.req.id":       requestID.String(),
			"http.req.method":   r.Method,
			"http.req.path":     r.URL.Path,
			"http.resp.status":  rr.status,
			"http.resp.bytes":   rr.bytes,
			"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
		}).Info("request complete")
	}
}

// recoverPanic is the process-wide fallback: anything a handler lets escape
// becomes the generic 500 envelope instead of a dropped connection.
func recoverPanic(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Connection", "close")
				log.WithField("panic", rec).Error("recovered from panic")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	}
}

func (app *application) rateLimit(next http.Handler) http.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) >= 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			writeServerError(w, err)
			return
		}
		mu.Lock()
		c, ok := clients[ip]
		if !ok {
			c = &client{
				limiter: rate.NewLimiter(rate.Limit(app.config.limiter.maxRequestPerSecond), app.config.limiter.burst),
			}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()
		if !allowed {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (app *application) enableCORS(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" {
			for _, o := range app.config.cors.trustedOrigins {
				if origin == o || o == "*" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					// preflight request
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, PUT, DELETE")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}
					break
				}
			}
		}
		next.ServeHTTP(w, r)
	}
}
