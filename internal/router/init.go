package router

import (
	"github.com/shoprates/ratings-review-api/internal/application"
	"github.com/shoprates/ratings-review-api/internal/container"
	pginfra "github.com/shoprates/ratings-review-api/internal/infrastructure/postgres"
	handlers "github.com/shoprates/ratings-review-api/internal/interface/http"
	"github.com/shoprates/ratings-review-api/internal/router/modules"
)

type Deps struct {
	Users    *application.UserService
	Products *application.ProductService
	Reviews  *application.ReviewService
}

func buildDeps() Deps {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	reviewRepo := pginfra.NewReviewRepository(pool)
	tagRepo := pginfra.NewTagRepository(pool)

	cfg := container.GetConfig()

	return Deps{
		Users: application.NewUserService(userRepo, container.GetJWT(), logger),
		Products: application.NewProductService(
			productRepo,
			reviewRepo,
			container.GetES(),
			cfg.ESProductsIndex,
			logger,
		),
		Reviews: application.NewReviewService(
			reviewRepo,
			tagRepo,
			productRepo,
			container.GetRabbitPub(),
			logger,
		),
	}
}

// InitModules builds the service graph from the container singletons and
// registers every feature module with the router registry. Called once
// during startup.
func InitModules(r *Registry) {
	deps := buildDeps()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userHandler := handlers.NewUserHandler(deps.Users, logger, cfg.CookieDomain, cfg.CookieSecure)
	productHandler := handlers.NewProductHandler(deps.Products, logger)
	reviewHandler := handlers.NewReviewHandler(deps.Reviews, container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewProductModule(productHandler))
	r.Add(modules.NewReviewModule(reviewHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
