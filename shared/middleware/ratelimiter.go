package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/plaza-dev/plaza/shared/middleware/ratelimiter"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetMemberIdentity keys the limiter by the authenticated member, so it
// must run after NeedAuth.
func GetMemberIdentity(r *http.Request) (string, error) {
	memberId := GetMemberIdFromContext(r)
	if memberId == "" {
		return "", fmt.Errorf("can't get member id")
	}
	return memberId, nil
}

// GetIP keys the limiter by RemoteAddr only; forwarded headers are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
