package http

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// RequestID asigna un UUID a cada petición (header X-Request-ID) salvo que el cliente envíe uno.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator: uuid.NewString,
	})
}

// RequestLogger registra cada petición con request id, método, ruta, estado y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			ev = ev.Str("request_id", rid)
		}
		if reqErr, ok := c.Locals(localError).(error); ok {
			ev = ev.Err(reqErr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición HTTP")
		return err
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita peticiones por IP con un token bucket por visitante.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

// NewRateLimiter crea el limitador. rps <= 0 lo desactiva.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     5 * time.Minute,
	}
}

// Allow consume un token del visitante ip.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.limit <= 0 {
		return true
	}
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()
	return v.limiter.Allow()
}

// Cleanup elimina visitantes inactivos cada intervalo hasta que ctx termine.
func (rl *RateLimiter) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > rl.idle {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler middleware Fiber: 429 cuando el visitante agotó su cupo.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.Allow(c.IP()) {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(1))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "demasiadas peticiones, intente más tarde",
		})
	}
}
