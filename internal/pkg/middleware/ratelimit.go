package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/cache"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
)

// RateLimiter limita requisições por IP em janela fixa, com o contador no Redis.
// Falha do Redis não derruba a API: a requisição segue e o erro é registrado.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip

			count, err := client.IncrWithExpiry(r.Context(), key, period)
			if err != nil {
				log.Error("Falha ao consultar o rate limit no Redis.", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				log.Warn("Rate limit excedido.", map[string]interface{}{"ip": ip, "count": count})
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				response.Error(w, r, log, apperror.NewTooManyRequestsError("Too many requests, please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
