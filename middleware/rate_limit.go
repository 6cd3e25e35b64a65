package middleware

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-redis/redis/v8"

    "pawmart-storefront-api/models"
)

type RateLimiter struct {
    client *redis.Client
}

type RateLimitConfig struct {
    Requests int
    Window   time.Duration
    Message  string
}

var defaultConfigs = map[string]RateLimitConfig{
    "/api/auth/login": {
        Requests: 5,
        Window:   time.Minute * 15,
        Message:  "Too many login attempts. Please try again in 15 minutes.",
    },
    "/api/auth/refresh": {
        Requests: 10,
        Window:   time.Minute * 5,
        Message:  "Too many token refresh attempts. Please wait 5 minutes.",
    },
    "/api/checkout": {
        Requests: 10,
        Window:   time.Minute * 10,
        Message:  "Too many checkout attempts. Please wait a few minutes.",
    },
    "default": {
        Requests: 120,
        Window:   time.Minute,
        Message:  "Rate limit exceeded. Please slow down your requests.",
    },
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
    return &RateLimiter{client: client}
}

// RateLimitMiddleware enforces a fixed window per client. Redis errors
// fail open: the request proceeds and the error is logged.
func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            config := rl.getConfigForEndpoint(r.URL.Path)
            key := rl.getRateLimitKey(r)

            allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
            if err != nil {
                log.Printf("Rate limit check error: %v", err)
                next.ServeHTTP(w, r)
                return
            }

            w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
            w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
            w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

            if !allowed {
                log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
                w.WriteHeader(http.StatusTooManyRequests)

                json.NewEncoder(w).Encode(models.APIResponse{
                    Status:  "error",
                    Message: config.Message,
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
    if idx := strings.Index(path, "?"); idx != -1 {
        path = path[:idx]
    }

    if config, exists := defaultConfigs[path]; exists {
        return config
    }

    if strings.HasPrefix(path, "/api/auth/") {
        return RateLimitConfig{
            Requests: 20,
            Window:   time.Minute * 5,
            Message:  "Too many authentication requests. Please wait 5 minutes.",
        }
    }

    return defaultConfigs["default"]
}

func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
    ip := getClientIP(r)

    if strings.HasPrefix(r.URL.Path, "/api/auth/") {
        userAgentHash := fmt.Sprintf("%x", r.Header.Get("User-Agent"))
        if len(userAgentHash) > 8 {
            userAgentHash = userAgentHash[:8]
        }
        return fmt.Sprintf("rate_limit:auth:%s:%s", ip, userAgentHash)
    }

    return fmt.Sprintf("rate_limit:default:%s:%s", ip, r.URL.Path)
}

func getClientIP(r *http.Request) string {
    if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
        ips := strings.Split(ip, ",")
        return strings.TrimSpace(ips[0])
    }

    if ip := r.Header.Get("X-Real-IP"); ip != "" {
        return ip
    }

    ip := r.RemoteAddr
    if idx := strings.LastIndex(ip, ":"); idx != -1 {
        ip = ip[:idx]
    }
    return ip
}

func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (allowed bool, remaining int, resetTime time.Time, err error) {
    now := time.Now()
    windowStart := now.Truncate(config.Window)
    windowEnd := windowStart.Add(config.Window)

    // Counter per fixed window; INCR + EXPIRE keeps it atomic enough
    // for a best-effort limiter.
    windowKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

    count, err := rl.client.Incr(ctx, windowKey).Result()
    if err != nil {
        return false, 0, time.Time{}, err
    }

    if count == 1 {
        if err := rl.client.Expire(ctx, windowKey, config.Window).Err(); err != nil {
            log.Printf("Warning: failed to set TTL on %s: %v", windowKey, err)
        }
    }

    remaining = config.Requests - int(count)
    if remaining < 0 {
        remaining = 0
    }

    return int(count) <= config.Requests, remaining, windowEnd, nil
}
