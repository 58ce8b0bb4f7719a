package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/middleware"
	"github.com/velopay/wallet_app/internal/platform/config"
)

// moneyAmountPattern accepts positive decimal numerals with at most 4
// fractional digits, mirroring the persisted NUMERIC(18,4) shape.
var moneyAmountPattern = regexp.MustCompile(`^\d{1,18}(\.\d{1,4})?$`)

var registerValidationsOnce sync.Once

// RegisterValidations installs custom binding validators. Safe to call more
// than once.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
				return moneyAmountPattern.MatchString(fl.Field().String())
			})
		}
	})
}

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. redisClient may be nil, in which case idempotency-key support is
// disabled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	redisClient *redis.Client,
) {
	RegisterValidations()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Account onboarding happens before the holder has a token.
	registerAccountPublicRoutes(r, services.Account)

	setupAPIV1Routes(r, cfg, services, redisClient)
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	redisClient *redis.Client,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	var createMiddleware []gin.HandlerFunc
	if redisClient != nil {
		createMiddleware = append(createMiddleware, middleware.Idempotency(redisClient, cfg.IdempotencyTTL))
	}

	registerTransferRoutes(v1, services.Transfer, services.Account, createMiddleware...)
	registerDashboardRoutes(v1, services.Reporting)
	registerAccountRoutes(v1, services.Account)
}
