package handler

import (
	"errors"

	"koligo/internal/core/logger"
	"koligo/internal/features/tour/domain"
	"koligo/internal/features/tour/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TourHandler handles HTTP requests for tour operations.
type TourHandler struct {
	tourService *service.TourService
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(tourService *service.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// UpdateStatusRequest is the body of the parcel status update endpoint.
type UpdateStatusRequest struct {
	Status domain.ParcelStatus `json:"status"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// fail maps domain errors to HTTP responses, passing messages through verbatim.
func (h *TourHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrParcelNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrBarcodeMismatch),
		errors.Is(err, domain.ErrIncompleteProof),
		errors.Is(err, domain.ErrInvalidIncidentType),
		errors.Is(err, domain.ErrEmptyDescription):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	logger.Get().Error("Tour operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "internal server error", RayID: rayID(c)})
}

// GetTour godoc
// @Summary Get the daily tour for a driver
// @Tags tour
// @Produce json
// @Param driverId path string true "Driver ID"
// @Success 200 {object} domain.Tour
// @Router /api/tour/{driverId} [get]
func (h *TourHandler) GetTour(c *fiber.Ctx) error {
	tour, err := h.tourService.GetTour(c.Context(), c.Params("driverId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tour)
}

// GetStats godoc
// @Summary Get derived statistics for a driver's tour
// @Tags tour
// @Produce json
// @Param driverId path string true "Driver ID"
// @Success 200 {object} domain.TourStats
// @Router /api/tour/{driverId}/stats [get]
func (h *TourHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.tourService.GetStats(c.Context(), c.Params("driverId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// GetParcel godoc
// @Summary Get a single parcel
// @Tags tour
// @Produce json
// @Param driverId path string true "Driver ID"
// @Param parcelId path string true "Parcel ID"
// @Success 200 {object} domain.Parcel
// @Failure 404 {object} ErrorResponse
// @Router /api/tour/{driverId}/parcel/{parcelId} [get]
func (h *TourHandler) GetParcel(c *fiber.Ctx) error {
	parcel, err := h.tourService.GetParcel(c.Context(), c.Params("driverId"), c.Params("parcelId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(parcel)
}

// UpdateParcelStatus godoc
// @Summary Update a parcel status
// @Tags tour
// @Accept json
// @Produce json
// @Param driverId path string true "Driver ID"
// @Param parcelId path string true "Parcel ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} domain.Parcel
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tour/{driverId}/parcel/{parcelId}/status [put]
func (h *TourHandler) UpdateParcelStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body", RayID: rayID(c)})
	}

	parcel, err := h.tourService.UpdateParcelStatus(c.Context(), c.Params("driverId"), c.Params("parcelId"), req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(parcel)
}

// DeliverParcel godoc
// @Summary Confirm delivery of a parcel with proof
// @Tags tour
// @Accept json
// @Produce json
// @Param driverId path string true "Driver ID"
// @Param parcelId path string true "Parcel ID"
// @Param body body domain.DeliveryProof true "Delivery proof"
// @Success 200 {object} domain.Parcel
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tour/{driverId}/parcel/{parcelId}/deliver [post]
func (h *TourHandler) DeliverParcel(c *fiber.Ctx) error {
	var proof domain.DeliveryProof
	if err := c.BodyParser(&proof); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body", RayID: rayID(c)})
	}

	parcel, err := h.tourService.DeliverParcel(c.Context(), c.Params("driverId"), c.Params("parcelId"), proof)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(parcel)
}

// ReportIncident godoc
// @Summary Report a delivery incident for a parcel
// @Tags tour
// @Accept json
// @Produce json
// @Param driverId path string true "Driver ID"
// @Param parcelId path string true "Parcel ID"
// @Param body body domain.IncidentReport true "Incident report"
// @Success 200 {object} domain.Parcel
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tour/{driverId}/parcel/{parcelId}/incident [post]
func (h *TourHandler) ReportIncident(c *fiber.Ctx) error {
	var report domain.IncidentReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body", RayID: rayID(c)})
	}

	parcel, err := h.tourService.ReportIncident(c.Context(), c.Params("driverId"), c.Params("parcelId"), report)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(parcel)
}

// StartTour godoc
// @Summary Start a driver's tour
// @Tags tour
// @Produce json
// @Param driverId path string true "Driver ID"
// @Success 200 {object} domain.Tour
// @Router /api/tour/{driverId}/start [post]
func (h *TourHandler) StartTour(c *fiber.Ctx) error {
	tour, err := h.tourService.StartTour(c.Context(), c.Params("driverId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tour)
}

// Register mounts the tour routes on the given router.
func (h *TourHandler) Register(r fiber.Router) {
	r.Get("/tour/:driverId", h.GetTour)
	r.Get("/tour/:driverId/stats", h.GetStats)
	r.Get("/tour/:driverId/parcel/:parcelId", h.GetParcel)
	r.Put("/tour/:driverId/parcel/:parcelId/status", h.UpdateParcelStatus)
	r.Post("/tour/:driverId/parcel/:parcelId/deliver", h.DeliverParcel)
	r.Post("/tour/:driverId/parcel/:parcelId/incident", h.ReportIncident)
	r.Post("/tour/:driverId/start", h.StartTour)
}
