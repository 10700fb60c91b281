package controller

import (
	"net/http"

	"aisb_backend/internal/store"
	"aisb_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Store store.Store
}

func NewHealthController(db *gorm.DB, st store.Store) *HealthController {
	return &HealthController{DB: db, Store: st}
}

// HealthCheck godoc
// @Summary Service health
// @Description Reports the database connection and the active record store backend
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{}

	storeBackend := "file"
	if c.DB != nil {
		storeBackend = "database"
		sqlDB, err := c.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			components["database"] = "down"
		} else {
			components["database"] = "up"
		}
	}

	if fb, ok := c.Store.(*store.FallbackStore); ok && fb.UsingLocal() {
		storeBackend = "file (fallback)"
	}
	components["store"] = storeBackend

	if components["database"] == "down" && storeBackend == "database" {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
