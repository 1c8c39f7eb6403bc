package handlers

import (
	"bytes"
	"delivery-route-map/internal/api/dto"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/services"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeliveryHandler exposes delivery management endpoints.
type DeliveryHandler struct {
	Repo     ports.DeliveryRepository
	Geocoder ports.Geocoder
	Reports  ports.ReportRenderer
	Logger   *zap.Logger
}

func toDeliveryResponse(d *domain.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		ID:        d.ID,
		Address:   d.Address,
		City:      d.City,
		Notes:     d.Notes,
		Lat:       d.Lat,
		Lon:       d.Lon,
		Delivered: d.Delivered,
		CreatedAt: d.CreatedAt,
	}
}

func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.Repo.ListDeliveries(c.Request.Context())
	if err != nil {
		h.Logger.Error("list deliveries failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDeliveriesResponse{
		Deliveries: make([]dto.DeliveryResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		res.Deliveries = append(res.Deliveries, toDeliveryResponse(d))
	}

	c.JSON(http.StatusOK, res)
}

func (h *DeliveryHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		writeError(c, http.StatusBadRequest, "address is required")
		return
	}

	d, err := h.Repo.AddDelivery(c.Request.Context(), domain.NewDelivery{
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	})
	if err != nil {
		h.Logger.Error("add delivery failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, toDeliveryResponse(d))
}

func (h *DeliveryHandler) Geocode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	coords, err := services.GeocodeDelivery(c.Request.Context(), id, h.Repo, h.Geocoder)
	if errors.Is(err, domain.ErrDeliveryNotFound) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.Logger.Warn("geocode delivery failed", zap.Int("delivery_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "geocode_failed")
		return
	}

	c.JSON(http.StatusOK, dto.GeocodeResponse{OK: true, Lat: coords.Lat, Lon: coords.Lng})
}

func (h *DeliveryHandler) OpenWaze(c *gin.Context) {
	h.redirect(c, services.WazeLink)
}

func (h *DeliveryHandler) OpenMaps(c *gin.Context) {
	h.redirect(c, services.GoogleMapsLink)
}

// redirect sends the client to a navigation link for the delivery, or back
// to the map when the delivery does not exist.
func (h *DeliveryHandler) redirect(c *gin.Context, link func(*domain.Delivery) string) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.Repo.GetDelivery(c.Request.Context(), id)
	if errors.Is(err, domain.ErrDeliveryNotFound) {
		c.Redirect(http.StatusFound, "/map")
		return
	}
	if err != nil {
		h.Logger.Error("get delivery failed", zap.Int("delivery_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, link(d))
}

// Report downloads the delivery list, newest first, as a PDF.
func (h *DeliveryHandler) Report(c *gin.Context) {
	deliveries, err := h.Repo.ListDeliveries(c.Request.Context())
	if err != nil {
		h.Logger.Error("list deliveries failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	var buf bytes.Buffer
	if err := h.Reports.RenderDeliveries(&buf, deliveries); err != nil {
		h.Logger.Error("render delivery report failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="relatorio_entregas.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
