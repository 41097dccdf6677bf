package handlers

import (
	"math"
	"net/http"
	"strconv"

	"ishtop_backend/internal/geo"
	"ishtop_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GeoHandler struct {
	*BaseHandler
}

func NewGeoHandler(base *BaseHandler) *GeoHandler {
	return &GeoHandler{BaseHandler: base}
}

func (h *GeoHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/geo")
	{
		g.GET("/nearest-city", h.NearestCity)
		g.GET("/cities", h.Cities)
	}
}

// NearestCity - GET /geo/nearest-city?lat=&lon=
func (h *GeoHandler) NearestCity(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil ||
		lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Некорректные координаты"))
		return
	}

	city, distanceKm, err := geo.Nearest(lat, lon)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"city":        city,
		"distance_km": math.Round(distanceKm*10) / 10,
	})
}

// Cities - GET /geo/cities
func (h *GeoHandler) Cities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "cities": geo.All()})
}
