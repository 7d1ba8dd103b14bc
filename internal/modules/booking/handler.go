package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	studentID := c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), studentID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.GetBookingsForUser(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), domain.BookingStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking time range")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
	case ErrTutorNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Tutor not found")
	case ErrStudentNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Student not found")
	case ErrSubjectNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Subject not found")
	case ErrTutorNotEligible:
		response.Error(c, http.StatusConflict, response.CodeTutorNotEligible, "Tutor is not verified")
	case ErrStudentNotEligible:
		response.Error(c, http.StatusConflict, response.CodeStudentNotEligible, "Student profile is incomplete")
	case ErrSubjectNotTaught:
		response.Error(c, http.StatusConflict, response.CodeSubjectNotTaught, "Tutor does not teach this subject")
	case ErrConflict:
		response.Error(c, http.StatusConflict, response.CodeBookingConflict, "Time slot overlaps with existing booking")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, response.CodeInvalidStatusTransition, "Status transition is not allowed")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "You are not allowed to access this booking")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to process booking")
	}
}
