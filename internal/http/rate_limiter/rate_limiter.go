package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out a token bucket per client IP.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *Limiter) GetVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (l *Limiter) StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}
