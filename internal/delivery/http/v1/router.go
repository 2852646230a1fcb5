package v1

import (
	"sync"
	"time"

	"careerai-backend/config"
	"careerai-backend/internal/delivery/http/middleware"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/security"
	"careerai-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	UserUC        domain.UserUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	ResumeUC      domain.ResumeUsecase
	InterviewUC   domain.InterviewUsecase
	AnalysisUC    domain.AnalysisUsecase
	AdminUC       domain.AdminUsecase
	HealthUC      domain.HealthUsecase

	Redis         *goredis.Client // optional
	SecurityLog   *security.SecurityLogger
	UploadLimiter *security.UploadLimiter
	Config        *config.Config
}

var registerBindingOnce sync.Once

// registerBindingValidators adds the custom tags to gin's own validator so
// ShouldBindJSON understands them.
func registerBindingValidators() {
	registerBindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterValidators(v)
		}
	})
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerBindingValidators()
	cfg := deps.Config

	r := gin.New()
	limiter := middleware.NewRateLimiter(deps.Redis, deps.SecurityLog)
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(deps.SecurityLog))
	r.Use(limiter.Middleware(middleware.GlobalConfig(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Public routes
	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC, deps.SecurityLog))
	{
		NewAuthHandler(v1, protected, deps.AuthUC,
			limiter.Middleware(middleware.AuthConfig(cfg.RateLimitLoginThreshold, window)))
		NewUserHandler(v1, protected, deps.UserUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewResumeHandler(protected, deps.ResumeUC, deps.UploadLimiter, cfg.MaxUploadBytes)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewAnalysisHandler(protected, deps.AnalysisUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
