package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/goldfolio-api/internal/application/analytics"
	"github.com/jhoicas/goldfolio-api/internal/application/auth"
	"github.com/jhoicas/goldfolio-api/internal/application/usecase"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	BranchUC    *usecase.BranchUseCase
	UserUC      *usecase.UserUseCase
	ClientUC    *usecase.ClientUseCase
	DepositUC   *usecase.DepositReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log.Named("http.auth"))
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Branches: lectura para todos, escritura MASTER y ADMIN
	branchHandler := NewBranchHandler(deps.BranchUC, log.Named("http.branches"))
	branches := protected.Group("/branches")
	manageBranches := RequireCapability("administrar sucursales", entity.Role.CanManageBranches)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", manageBranches, branchHandler.Create)
	branches.Put("/:id", manageBranches, branchHandler.Update)
	branches.Delete("/:id", manageBranches, branchHandler.Delete)

	// Users (solo MASTER)
	userHandler := NewUserHandler(deps.UserUC, log.Named("http.users"))
	users := protected.Group("/users", RequireRole(entity.RoleMaster))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Clients
	clientHandler := NewClientHandler(deps.ClientUC, log.Named("http.clients"))
	clients := protected.Group("/clients")
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Patch("/:id/status", clientHandler.UpdateStatus)
	clients.Delete("/:id", clientHandler.Delete)

	// Deposits (las rutas fijas van antes de /:id)
	depositHandler := NewDepositHandler(deps.DepositUC, log.Named("http.deposits"))
	deposits := protected.Group("/deposit-receipts")
	deposits.Get("/duplicate-check", depositHandler.CheckDuplicate)
	deposits.Get("/banks", depositHandler.Banks)
	deposits.Get("/banks/:bank", depositHandler.ListByBank)
	deposits.Post("/", depositHandler.Create)
	deposits.Get("/", depositHandler.List)
	deposits.Get("/:id", depositHandler.GetByID)
	deposits.Get("/:id/pdf", depositHandler.PDF)
	deposits.Put("/:id", depositHandler.Update)
	deposits.Delete("/:id", depositHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log.Named("http.dashboard"))
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
