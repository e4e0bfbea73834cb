// Package resilience provides client-side request throttling.
//
// RateLimiter is a token bucket backed by golang.org/x/time/rate. The HTTP
// transport waits on it before every exchange so a burst of verb calls does
// not exceed the configured request rate:
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "rtdb", Rate: 20, Burst: 5})
//	if err := rl.Wait(ctx); err != nil {
//	    return err
//	}
//
// Nothing here retries; a failed exchange is reported to the caller as-is.
package resilience
