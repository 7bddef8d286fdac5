package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	activitylogdomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/auth"
	"github.com/fiberafrica/missioncontrol/internal/authorization"
	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/fiberafrica/missioncontrol/internal/config"
	documentdomain "github.com/fiberafrica/missioncontrol/internal/document/domain"
	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	fleetdomain "github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	inventoryrequestdomain "github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	"github.com/fiberafrica/missioncontrol/internal/observability"
	obsmiddleware "github.com/fiberafrica/missioncontrol/internal/observability/logger"
	obsmetrics "github.com/fiberafrica/missioncontrol/internal/observability/metrics"
	obstracing "github.com/fiberafrica/missioncontrol/internal/observability/tracing"
	pricesheetdomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/fiberafrica/missioncontrol/internal/ratelimit"
	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config

	verifier      *auth.Verifier
	authzSvc      authorization.Service
	mobileLimiter *ratelimit.MobileLimiter
	obsMetrics    *obsmetrics.Metrics

	dropCableSvc        dropcabledomain.Service
	linkBuildSvc        linkbuilddomain.Service
	priceSheetSvc       pricesheetdomain.Service
	clientSvc           clientdomain.Service
	staffSvc            staffdomain.Service
	fleetSvc            fleetdomain.Service
	inventorySvc        inventorydomain.Service
	inventoryRequestSvc inventoryrequestdomain.Service
	documentSvc         documentdomain.Service
	activitySvc         activitylogdomain.Service
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Verifier *auth.Verifier
	AuthzSvc authorization.Service

	DropCableSvc        dropcabledomain.Service
	LinkBuildSvc        linkbuilddomain.Service
	PriceSheetSvc       pricesheetdomain.Service
	ClientSvc           clientdomain.Service
	StaffSvc            staffdomain.Service
	FleetSvc            fleetdomain.Service
	InventorySvc        inventorydomain.Service
	InventoryRequestSvc inventoryrequestdomain.Service
	DocumentSvc         documentdomain.Service
	ActivitySvc         activitylogdomain.Service

	MobileLimiter *ratelimit.MobileLimiter `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:              p.Gin,
		cfg:                 p.Cfg,
		verifier:            p.Verifier,
		authzSvc:            p.AuthzSvc,
		mobileLimiter:       p.MobileLimiter,
		obsMetrics:          p.ObsMetrics,
		dropCableSvc:        p.DropCableSvc,
		linkBuildSvc:        p.LinkBuildSvc,
		priceSheetSvc:       p.PriceSheetSvc,
		clientSvc:           p.ClientSvc,
		staffSvc:            p.StaffSvc,
		fleetSvc:            p.FleetSvc,
		inventorySvc:        p.InventorySvc,
		inventoryRequestSvc: p.InventoryRequestSvc,
		documentSvc:         p.DocumentSvc,
		activitySvc:         p.ActivitySvc,
	}

	svc.registerAPIRoutes()
	svc.registerMobileRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.WebAuthRequired())

	// -------- Drop cable --------
	api.GET("/drop-cable", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListDropCables)
	api.POST("/drop-cable", s.authorize(authorization.ObjectOrder, authorization.ActionCreate), s.CreateDropCable)
	api.PUT("/drop-cable", s.authorize(authorization.ObjectOrder, authorization.ActionUpdate), s.UpdateDropCable)
	api.GET("/drop-cable/client/:clientId", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListDropCablesByClient)
	api.GET("/drop-cable/technician/:technicianId", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListDropCablesByTechnician)
	api.GET("/drop-cable/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.GetDropCable)
	api.DELETE("/drop-cable/:id", s.authorize(authorization.ObjectOrder, authorization.ActionDelete), s.DeleteDropCable)
	api.GET("/drop-cable/:id/costs", s.authorize(authorization.ObjectCosts, authorization.ActionView), s.GetDropCableCosts)
	api.POST("/drop-cable/weekly-totals", s.authorize(authorization.ObjectCosts, authorization.ActionView), s.DropCableWeeklyTotals)
	api.POST("/drop-cable/weekly-totals/export", s.authorize(authorization.ObjectCosts, authorization.ActionExport), s.ExportDropCableWeeklyTotals)
	api.POST("/drop-cable/weekly-totals/quote", s.authorize(authorization.ObjectCosts, authorization.ActionExport), s.DropCableWeeklyQuote)
	api.POST("/drop-cable/email/access-request", s.authorize(authorization.ObjectOrder, authorization.ActionSend), s.SendAccessRequest)

	// -------- Link build --------
	api.GET("/link-build", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListLinkBuilds)
	api.POST("/link-build", s.authorize(authorization.ObjectOrder, authorization.ActionCreate), s.CreateLinkBuild)
	api.PUT("/link-build", s.authorize(authorization.ObjectOrder, authorization.ActionUpdate), s.UpdateLinkBuild)
	api.GET("/link-build/client/:clientName", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListLinkBuildsByClient)
	api.GET("/link-build/technician/:technician", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListLinkBuildsByTechnician)
	api.GET("/link-build/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.GetLinkBuild)
	api.DELETE("/link-build/:id", s.authorize(authorization.ObjectOrder, authorization.ActionDelete), s.DeleteLinkBuild)
	api.GET("/link-build/:id/costs", s.authorize(authorization.ObjectCosts, authorization.ActionView), s.GetLinkBuildCosts)
	api.POST("/link-build/weekly-totals", s.authorize(authorization.ObjectCosts, authorization.ActionView), s.LinkBuildWeeklyTotals)

	// -------- Price sheets --------
	api.GET("/service-costs/lookup", s.authorize(authorization.ObjectPriceSheet, authorization.ActionView), s.LookupServiceCost)
	api.GET("/service-costs/client/:clientId", s.authorize(authorization.ObjectPriceSheet, authorization.ActionView), s.ListServiceCosts)
	api.POST("/service-costs", s.authorize(authorization.ObjectPriceSheet, authorization.ActionCreate), s.CreateServiceCost)
	api.PATCH("/service-costs/:id", s.authorize(authorization.ObjectPriceSheet, authorization.ActionUpdate), s.UpdateServiceCost)

	// -------- Clients --------
	api.GET("/clients", s.authorize(authorization.ObjectClient, authorization.ActionView), s.ListClients)
	api.POST("/clients", s.authorize(authorization.ObjectClient, authorization.ActionCreate), s.CreateClient)
	api.GET("/clients/:id", s.authorize(authorization.ObjectClient, authorization.ActionView), s.GetClient)
	api.PATCH("/clients/:id", s.authorize(authorization.ObjectClient, authorization.ActionUpdate), s.UpdateClient)

	// -------- Staff --------
	api.GET("/staff", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.ListStaff)
	api.GET("/staff/technicians", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.ListTechnicians)
	api.GET("/staff/locations", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.ListStaffLocations)
	api.GET("/staff/:id", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.GetStaff)

	// -------- Fleet --------
	api.GET("/fleet", s.authorize(authorization.ObjectFleet, authorization.ActionView), s.ListVehicles)
	api.POST("/fleet", s.authorize(authorization.ObjectFleet, authorization.ActionCreate), s.CreateVehicle)
	api.GET("/fleet/:id", s.authorize(authorization.ObjectFleet, authorization.ActionView), s.GetVehicle)
	api.PATCH("/fleet/:id", s.authorize(authorization.ObjectFleet, authorization.ActionUpdate), s.UpdateVehicle)
	api.DELETE("/fleet/:id", s.authorize(authorization.ObjectFleet, authorization.ActionDelete), s.DeleteVehicle)

	// -------- Inventory --------
	api.GET("/inventory", s.authorize(authorization.ObjectInventory, authorization.ActionView), s.ListInventory)
	api.POST("/inventory", s.authorize(authorization.ObjectInventory, authorization.ActionCreate), s.CreateInventoryItem)
	api.POST("/inventory/usage", s.authorize(authorization.ObjectInventory, authorization.ActionUpdate), s.ApplyInventoryUsage)
	api.GET("/inventory/usage/:jobType/:jobId", s.authorize(authorization.ObjectInventory, authorization.ActionView), s.GetJobInventoryUsage)
	api.GET("/inventory/:id", s.authorize(authorization.ObjectInventory, authorization.ActionView), s.GetInventoryItem)
	api.PATCH("/inventory/:id", s.authorize(authorization.ObjectInventory, authorization.ActionUpdate), s.UpdateInventoryItem)
	api.DELETE("/inventory/:id", s.authorize(authorization.ObjectInventory, authorization.ActionDelete), s.DeleteInventoryItem)

	// -------- Inventory requests --------
	api.GET("/inventory-requests", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionView), s.ListInventoryRequests)
	api.GET("/inventory-requests/pending-count", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionView), s.CountPendingInventoryRequests)
	api.GET("/inventory-requests/job/:jobType/:jobId", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionView), s.ListInventoryRequestsByJob)
	api.GET("/inventory-requests/technician/:technicianId", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionView), s.ListInventoryRequestsByTechnician)
	api.GET("/inventory-requests/:id", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionView), s.GetInventoryRequest)
	api.POST("/inventory-requests/:id/approve", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionApprove), s.ApproveInventoryRequest)
	api.POST("/inventory-requests/:id/reject", s.authorize(authorization.ObjectInventoryRequest, authorization.ActionApprove), s.RejectInventoryRequest)

	// -------- Activity logs --------
	api.GET("/logs", s.authorize(authorization.ObjectLog, authorization.ActionView), s.ListActivityLogs)

	// -------- Documents --------
	api.POST("/documents", s.authorize(authorization.ObjectDocument, authorization.ActionCreate), s.UploadDocument)
	api.GET("/documents/url", s.authorize(authorization.ObjectDocument, authorization.ActionView), s.GetDocumentURLByPath)
	api.GET("/documents/job/:jobType/:jobId", s.authorize(authorization.ObjectDocument, authorization.ActionView), s.ListJobDocuments)
	api.GET("/documents/:id/url", s.authorize(authorization.ObjectDocument, authorization.ActionView), s.GetDocumentURL)
	api.DELETE("/documents/:id", s.authorize(authorization.ObjectDocument, authorization.ActionDelete), s.DeleteDocument)
}

func (s *Server) registerMobileRoutes() {
	mobile := s.engine.Group("/mobile", s.MobileAuthRequired(), s.MobileRateLimit())

	mobile.GET("/me", s.MobileMe)

	// -------- Orders --------
	mobile.GET("/orders/:technicianId", s.MobileTechnicianOrders)
	mobile.GET("/drop-cable/:id", s.MobileGetDropCable)
	mobile.GET("/link-build/:id", s.MobileGetLinkBuild)

	// -------- Documents --------
	mobile.GET("/documents/template/happy-letter", s.MobileHappyLetterTemplate)
	mobile.POST("/documents/upload", s.MobileUploadDocument)
	mobile.GET("/documents/job/:jobType/:jobId", s.ListJobDocuments)
	mobile.GET("/documents/signed-url", s.MobileSignedURL)

	// -------- Inventory --------
	mobile.GET("/inventory", s.ListInventory)
	mobile.GET("/inventory/job/:jobType/:jobId", s.GetJobInventoryUsage)
	mobile.GET("/inventory/requests", s.MobileMyInventoryRequests)
	mobile.POST("/inventory/requests", s.MobileCreateInventoryRequest)
	mobile.GET("/inventory/requests/job/:jobType/:jobId", s.ListInventoryRequestsByJob)

	// -------- Location --------
	mobile.PATCH("/location", s.MobileUpdateLocation)
}
