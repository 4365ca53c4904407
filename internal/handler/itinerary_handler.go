package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripflow/itinerary-backend-go/internal/models"
	"github.com/tripflow/itinerary-backend-go/internal/service"
	"github.com/tripflow/itinerary-backend-go/pkg/response"
)

// ItineraryHandler handles HTTP requests for itineraries
type ItineraryHandler struct {
	service *service.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(service *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

// createItineraryRequest is the POST body for itinerary creation
type createItineraryRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Segments    []models.Segment `json:"segments"`
}

// Create handles POST /api/v1/itineraries
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req createItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	for i := range req.Segments {
		if !req.Segments[i].HasValidTimes() {
			response.BadRequest(c, "Segment "+strconv.Itoa(i)+" has missing or unordered timestamps")
			return
		}
	}

	it := &models.Itinerary{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := h.service.Create(it, req.Segments); err != nil {
		response.InternalError(c, "Failed to create itinerary")
		return
	}

	response.Created(c, gin.H{"id": it.ID})
}

// Get handles GET /api/v1/itineraries/:id
func (h *ItineraryHandler) Get(c *gin.Context) {
	it, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get itinerary")
		return
	}
	if it == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}
	response.Success(c, it)
}

// List handles GET /api/v1/itineraries
func (h *ItineraryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.List(limit, offset)
	if err != nil {
		response.InternalError(c, "Failed to list itineraries")
		return
	}
	response.Success(c, items)
}

// DetectGaps handles GET /api/v1/itineraries/:id/gaps. Read-only: the
// itinerary is analyzed but never modified.
func (h *ItineraryHandler) DetectGaps(c *gin.Context) {
	id := c.Param("id")
	it, err := h.service.Get(id)
	if err != nil {
		response.InternalError(c, "Failed to get itinerary")
		return
	}
	if it == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}

	gaps, err := h.service.DetectGaps(id)
	if err != nil {
		response.InternalError(c, "Failed to detect gaps")
		return
	}
	response.Success(c, gin.H{"gaps": gaps, "count": len(gaps)})
}

// Normalize handles POST /api/v1/itineraries/:id/normalize: runs the full
// continuity pipeline and persists the corrected sequence.
func (h *ItineraryHandler) Normalize(c *gin.Context) {
	report, err := h.service.Normalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to normalize itinerary")
		return
	}
	if report == nil {
		response.NotFound(c, "Itinerary not found")
		return
	}
	response.Success(c, report)
}
