package main

import (
	"net/http"

	"monument-backend/internal/config"
	"monument-backend/internal/dbadmin"
	"monument-backend/internal/domains/accessory"
	"monument-backend/internal/domains/announcement"
	"monument-backend/internal/domains/asset"
	"monument-backend/internal/domains/campaign"
	"monument-backend/internal/domains/faq"
	"monument-backend/internal/domains/page"
	"monument-backend/internal/domains/product"
	"monument-backend/internal/domains/service"
	"monument-backend/internal/domains/setting"
	"monument-backend/internal/infrastructure/database"
	"monument-backend/internal/infrastructure/storage"
	"monument-backend/internal/shared/media"
	"monument-backend/internal/shared/middleware"
	"monument-backend/pkg/cache"
	"monument-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type dependencies struct {
	cfg      *config.Config
	db       *database.PostgresDB
	cache    cache.Cache
	store    *storage.MinIOStorage
	resolver *media.Resolver
	jwt      *jwt.Manager
	dbadmin  *dbadmin.Admin
}

func newRouter(deps dependencies) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = deps.cfg.App.MaxMultipartMB << 20

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(deps.cfg.CORS.AllowedOrigins))

	pool := deps.db.Pool

	products := product.NewHandler(product.NewRepository(pool), deps.resolver)
	accessories := accessory.NewHandler(accessory.NewRepository(pool), deps.resolver)
	services := service.NewHandler(service.NewRepository(pool), deps.resolver)
	announcements := announcement.NewHandler(announcement.NewRepository(pool))
	campaigns := campaign.NewHandler(campaign.NewRepository(pool), deps.resolver)
	faqs := faq.NewHandler(faq.NewRepository(pool))
	pages := page.NewHandler(page.NewRepository(pool), deps.cache)
	settings := setting.NewHandler(setting.NewRepository(pool), deps.cache)
	assets := asset.NewHandler(asset.NewRepository(pool), deps.store, deps.resolver)
	db := dbadmin.NewHandler(deps.dbadmin)

	r.GET("/health", func(c *gin.Context) {
		if err := deps.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface: active content only, resolved media URLs.
	r.GET("/products", products.PublicList)
	r.GET("/products/:idOrSlug", products.PublicGet)
	r.GET("/accessories", accessories.PublicList)
	r.GET("/accessories/:idOrSlug", accessories.PublicGet)
	r.GET("/services", services.PublicList)
	r.GET("/services/:idOrSlug", services.PublicGet)
	r.GET("/announcements", announcements.PublicList)
	r.GET("/announcements/:idOrSlug", announcements.PublicGet)
	r.GET("/campaigns", campaigns.PublicList)
	r.GET("/campaigns/:idOrSlug", campaigns.PublicGet)
	r.GET("/faqs", faqs.PublicList)
	r.GET("/faqs/:idOrSlug", faqs.PublicGet)
	r.GET("/pages", pages.PublicList)
	r.GET("/pages/:slug", pages.PublicGet)
	r.GET("/settings", settings.PublicMap)
	r.GET("/storage/:bucket/*path", assets.Serve)

	admin := r.Group("/admin", middleware.Auth(deps.jwt), middleware.RequireAdmin())
	{
		p := admin.Group("/products")
		p.GET("", products.AdminList)
		p.GET("/:id", products.AdminGet)
		p.POST("", products.Create)
		p.PATCH("/:id", products.Update)
		p.DELETE("/:id", products.Delete)
		p.POST("/reorder", products.Reorder)
		p.PATCH("/:id/image", products.SetImage)

		a := admin.Group("/accessories")
		a.GET("", accessories.AdminList)
		a.GET("/:id", accessories.AdminGet)
		a.POST("", accessories.Create)
		a.PATCH("/:id", accessories.Update)
		a.DELETE("/:id", accessories.Delete)
		a.POST("/reorder", accessories.Reorder)
		a.PATCH("/:id/image", accessories.SetImage)

		sv := admin.Group("/services")
		sv.GET("", services.AdminList)
		sv.GET("/:id", services.AdminGet)
		sv.POST("", services.Create)
		sv.PATCH("/:id", services.Update)
		sv.DELETE("/:id", services.Delete)
		sv.POST("/reorder", services.Reorder)
		sv.PATCH("/:id/image", services.SetImage)

		an := admin.Group("/announcements")
		an.GET("", announcements.AdminList)
		an.GET("/:id", announcements.AdminGet)
		an.POST("", announcements.Create)
		an.PATCH("/:id", announcements.Update)
		an.DELETE("/:id", announcements.Delete)
		an.POST("/reorder", announcements.Reorder)
		an.POST("/:id/publish", announcements.Publish)
		an.POST("/:id/unpublish", announcements.Unpublish)

		cp := admin.Group("/campaigns")
		cp.GET("", campaigns.AdminList)
		cp.GET("/:id", campaigns.AdminGet)
		cp.POST("", campaigns.Create)
		cp.PATCH("/:id", campaigns.Update)
		cp.DELETE("/:id", campaigns.Delete)
		cp.POST("/reorder", campaigns.Reorder)
		cp.PATCH("/:id/image", campaigns.SetImage)

		f := admin.Group("/faqs")
		f.GET("", faqs.AdminList)
		f.GET("/:id", faqs.AdminGet)
		f.POST("", faqs.Create)
		f.PATCH("/:id", faqs.Update)
		f.DELETE("/:id", faqs.Delete)
		f.POST("/reorder", faqs.Reorder)

		pg := admin.Group("/pages")
		pg.GET("", pages.AdminList)
		pg.GET("/:id", pages.AdminGet)
		pg.POST("", pages.Create)
		pg.PATCH("/:id", pages.Update)
		pg.DELETE("/:id", pages.Delete)
		pg.POST("/reorder", pages.Reorder)

		st := admin.Group("/settings")
		st.GET("", settings.AdminList)
		st.GET("/:key", settings.AdminGet)
		st.PUT("/:key", settings.Upsert)
		st.DELETE("/:key", settings.Delete)

		as := admin.Group("/storage")
		as.GET("/assets", assets.AdminList)
		as.GET("/assets/:id", assets.AdminGet)
		as.DELETE("/assets/:id", assets.Delete)
		as.POST("/upload", assets.Upload)
		as.POST("/sign-put", assets.SignPut)
		as.POST("/sign-multipart", assets.SignMultipart)
		as.POST("/complete", assets.CompleteMultipart)

		dbg := admin.Group("/db")
		dbg.POST("/dump", db.Dump)
		dbg.POST("/restore", db.Restore)
		dbg.GET("/tables", db.Tables)
	}

	return r
}
