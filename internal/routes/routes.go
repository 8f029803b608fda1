package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/internal/handlers"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
)

// Store объединяет все, что маршрутам нужно от базы.
type Store interface {
	handlers.WalletStore
	handlers.TransactionStore
	handlers.GoalStore
	handlers.EntityCounter
	handlers.Pinger
}

type Dependencies struct {
	Store       Store
	Categories  handlers.CategoryStore
	Goals       *goals.Service
	Notifier    handlers.Notifier
	Logger      *log.Logger
	StaticDir   string
	CORSOrigins []string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.Middleware(deps.Logger))
	r.Use(CORSMiddleware(deps.CORSOrigins))

	r.GET("/healthz", handlers.HealthzHandler())
	r.GET("/readyz", handlers.ReadyzHandler(deps.Store))

	api := r.Group("/api")
	{
		api.GET("/wallets", handlers.ListWalletsHandler(deps.Store))
		api.POST("/wallets", handlers.CreateWalletHandler(deps.Store))
		api.PUT("/wallets/:id", handlers.UpdateWalletHandler(deps.Store))
		api.DELETE("/wallets/:id", handlers.DeleteWalletHandler(deps.Store))

		api.GET("/categories", handlers.ListCategoriesHandler(deps.Categories))
		api.POST("/categories", handlers.CreateCategoryHandler(deps.Categories))
		api.PUT("/categories/:id", handlers.UpdateCategoryHandler(deps.Categories))
		api.DELETE("/categories/:id", handlers.DeleteCategoryHandler(deps.Categories))

		api.GET("/transactions", handlers.ListTransactionsHandler(deps.Store))
		api.GET("/transactions/export", handlers.ExportTransactionsHandler(deps.Store, deps.Store))
		api.POST("/transactions", handlers.CreateTransactionHandler(deps.Store, deps.Notifier))
		api.PUT("/transactions/:id", handlers.UpdateTransactionHandler(deps.Store, deps.Notifier))
		api.DELETE("/transactions/:id", handlers.DeleteTransactionHandler(deps.Store, deps.Notifier))

		api.GET("/goals", handlers.ListGoalsHandler(deps.Goals))
		api.GET("/goals/:id", handlers.GetGoalHandler(deps.Goals))
		api.POST("/goals", handlers.CreateGoalHandler(deps.Store, deps.Goals))
		api.PUT("/goals/:id", handlers.UpdateGoalHandler(deps.Store, deps.Goals))
		api.DELETE("/goals/:id", handlers.DeleteGoalHandler(deps.Store))

		api.GET("/dashboard", handlers.DashboardHandler(handlers.DashboardSources{
			Wallets:      deps.Store,
			Counter:      deps.Store,
			Transactions: deps.Store,
			Goals:        deps.Goals,
		}))
	}

	r.NoRoute(staticFallback(deps.StaticDir))
	return r
}

// CORSMiddleware разрешает запросы с перечисленных источников, "*" разрешает любые.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// staticFallback отдает файлы фронтенда, а для неизвестных путей отдает index.html.
// Неизвестные пути под /api получают JSON 404.
func staticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден"})
			return
		}
		c.File(index)
	}
}
