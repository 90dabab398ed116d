package handlers

import (
	"context"
	"net/http"
	"time"

	"invoice-service/internal/services"
	"invoice-service/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterDeps struct {
	InvoiceDir string
	DB         Pinger

	UserService     services.IUserService
	InvoiceService  services.IInvoiceService
	ExportService   services.IExportService
	ClientService   services.IClientService
	CompanyService  services.ICompanyService
	BankService     services.IBankDetailService
	SettingsService services.ISettingsService
}

// NewRouter wires every route. Everything under /api except signup and
// login requires a bearer token.
func NewRouter(deps RouterDeps) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Invoice service is running")
	})
	r.GET("/checkhealth", checkHealth(deps.DB))
	if deps.InvoiceDir != "" {
		r.Static("/invoices", deps.InvoiceDir)
	}

	middleware := NewMiddleware(deps.UserService)
	api := r.Group("/api")
	NewUserHandler(deps.UserService, middleware).RegisterRoutes(api)

	protected := api.Group("", middleware.RequireAuth())
	NewInvoiceHandler(deps.InvoiceService, deps.ExportService).RegisterRoutes(protected)
	NewClientHandler(deps.ClientService).RegisterRoutes(protected)
	NewCompanyHandler(deps.CompanyService).RegisterRoutes(protected)
	NewBankDetailHandler(deps.BankService).RegisterRoutes(protected)
	NewSettingsHandler(deps.SettingsService).RegisterRoutes(protected)

	return r
}

func checkHealth(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, utils.CreateErrorResponseWithDetail("UNHEALTHY", "Database unreachable", err.Error()))
				return
			}
		}
		c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"status": "healthy"}))
	}
}
