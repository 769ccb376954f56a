package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "hallpoint/docs" // registra a especificação servida em /swagger
	"hallpoint/internal/api/auth"
	"hallpoint/internal/api/meal"
	"hallpoint/internal/api/mealrequest"
	"hallpoint/internal/api/review"
	"hallpoint/internal/api/upcoming"
	"hallpoint/internal/api/user"
	"hallpoint/internal/domain"
	"hallpoint/internal/pkg/cache"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Upcoming    *upcoming.Handler
	Meal        *meal.Handler
	Review      *review.Handler
	MealRequest *mealrequest.Handler
}

// Options reúne as dependências transversais do roteador.
type Options struct {
	TokenValidator  middleware.TokenValidator
	Revocations     middleware.RevocationChecker // nil desabilita a consulta de revogação
	Users           middleware.UserFinder
	Cache           cache.Client // nil desabilita o rate limit
	AllowedOrigins  []string
	RateLimit       int
	RateLimitPeriod time.Duration
	Logger          logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Cache != nil && opts.RateLimit > 0 {
		r.Use(middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitPeriod, opts.Logger))
	}

	requireToken := middleware.NewAuthMiddleware(opts.TokenValidator, opts.Revocations, opts.Logger)
	roles := middleware.NewRoleGate(opts.Users, opts.Logger)
	adminOnly := roles.Require(domain.RoleAdmin)
	userOnly := roles.Require(domain.RoleUser)
	ownerOrAdmin := roles.Require(domain.RoleUser, domain.RoleAdmin)

	// --- 2. Health check e documentação ---
	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// --- 3. Sessão ---
	r.Post("/jwt", h.Auth.IssueTokenHandler)
	r.Post("/logout", h.Auth.LogoutHandler)

	// --- 4. Rotas públicas ---
	r.Post("/users", h.User.RegisterUserHandler)
	r.Get("/upcoming-meals", h.Upcoming.ListHandler)
	r.Post("/upcoming-meals", h.Upcoming.SubmitHandler)
	r.Patch("/upcoming-meals/like/{id}", h.Upcoming.LikeHandler)
	r.Get("/meals", h.Meal.ListHandler)
	r.Get("/meals/{id}", h.Meal.GetByIDHandler)
	r.Get("/meals/{id}/reviews", h.Review.ListByMealHandler)

	// --- 5. Rotas que exigem sessão ---
	r.Group(func(r chi.Router) {
		r.Use(requireToken)

		r.Get("/users", h.User.GetUserHandler)
		r.Get("/users/role", h.User.GetRoleHandler)
		r.Post("/meals/{id}/reviews", h.Review.AddHandler)
		r.Patch("/meals/{id}/like", h.Meal.LikeHandler)
		r.Get("/meal-requests", h.MealRequest.ExistsHandler)
		r.Post("/meal-requests", h.MealRequest.CreateHandler)

		// --- 6. Rotas do usuário comum ---
		r.With(userOnly).Get("/reviews/user", h.Review.ListMineHandler)
		r.With(userOnly).Get("/meal-requests/user", h.MealRequest.ListMineHandler)

		// --- 7. Dono do recurso ou administrador (posse conferida no serviço) ---
		r.Group(func(r chi.Router) {
			r.Use(ownerOrAdmin)

			r.Patch("/reviews/{id}", h.Review.UpdateHandler)
			r.Delete("/reviews/{id}", h.Review.DeleteHandler)
			r.Delete("/meal-requests/{id}", h.MealRequest.DeleteHandler)
		})

		// --- 8. Rotas restritas a administradores ---
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/users/search", h.User.SearchUsersHandler)
			r.Get("/users/manageUsers", h.User.ManageUsersHandler)
			r.Patch("/users/update-role/{id}", h.User.UpdateRoleHandler)
			r.Get("/upcoming-meals/sorted", h.Upcoming.ListSortedHandler)
			r.Delete("/upcoming-meals/{id}", h.Upcoming.DeleteHandler)
			r.Get("/meals/distributor/{email}", h.Meal.ListByDistributorHandler)
			r.Post("/meals", h.Meal.CreateHandler)
			r.Get("/meals/sorted", h.Meal.ListSortedHandler)
			r.Patch("/meals/update/{id}", h.Meal.UpdateHandler)
			r.Delete("/meals/{id}", h.Meal.DeleteHandler)
			r.Get("/reviews", h.Review.ListAllHandler)
			r.Get("/meal-requests/all", h.MealRequest.ListAllHandler)
			r.Get("/meal-requests/search", h.MealRequest.SearchHandler)
			r.Patch("/meal-requests/serve/{id}", h.MealRequest.ServeHandler)
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
