// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking/models"
	"table-booking/services"
	"table-booking/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CheckDuplicateRequest struct {
	Date  string `json:"date" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateBookingRequest struct {
	models.NightPlan
	models.GuestIdentity
	AllowDuplicate bool `json:"allow_duplicate"`
}

type CreateBatchRequest struct {
	models.GuestIdentity
	Bookings []models.NightPlan `json:"bookings"`
}

type MarkNoTableRequest struct {
	BookingID models.FlexInt `json:"booking_id"`
	Dates     []string       `json:"dates"`
}

// PlanStayRequest carries the whole stay planner: the nights of the stay,
// the ones already holding a table and the guest's choices.
type PlanStayRequest struct {
	models.GuestIdentity
	Nights        []string           `json:"nights"`
	AlreadyBooked []string           `json:"already_booked"`
	People        int                `json:"people"`
	Selections    []models.NightPlan `json:"selections"`
	NoTable       []string           `json:"no_table"`
}

type PlanStayResponse struct {
	models.StayPlanOutcome
	Pending []string `json:"pending"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Bookings   *services.BookingService
	Batches    *services.BatchBookingCoordinator
	Duplicates *services.DuplicateChecker
}

func NewBookingController(bookings *services.BookingService, batches *services.BatchBookingCoordinator, duplicates *services.DuplicateChecker) *BookingController {
	return &BookingController{Bookings: bookings, Batches: batches, Duplicates: duplicates}
}

// badRequest reports whether err is the guest's fault.
func badRequest(err error) bool {
	for _, target := range []error{
		services.ErrInvalidGuest,
		services.ErrMissingFields,
		services.ErrPartyTooLarge,
		services.ErrOutsideWindow,
		services.ErrNothingToSubmit,
		services.ErrTooManyNights,
		services.ErrUnknownNight,
		services.ErrNightBooked,
		services.ErrNightConflict,
		services.ErrStayNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// POST /check-duplicate
func (bc *BookingController) CheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bc.Duplicates.Check(c.Request.Context(), req.Date, req.Email, req.Phone))
}

// POST /create-booking
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	res, dup, err := bc.Bookings.CreateBooking(c.Request.Context(), req.NightPlan, req.GuestIdentity, req.AllowDuplicate)
	switch {
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error(), "duplicate": dup})
		return
	case err != nil && badRequest(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !res.Success {
		utils.JSONError(c, http.StatusBadGateway, res.Error)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// POST /create-bookings-batch
func (bc *BookingController) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := services.ValidateGuest(req.GuestIdentity); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := bc.Batches.SubmitBatch(c.Request.Context(), req.Bookings, req.GuestIdentity)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"results": results})
}

// POST /mark-no-table
func (bc *BookingController) MarkNoTable(c *gin.Context) {
	var req MarkNoTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	for _, d := range req.Dates {
		if !utils.ValidDate(d) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
	}

	err := bc.Batches.MarkNoTable(c.Request.Context(), int(req.BookingID), req.Dates)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, gin.H{"dates": req.Dates})
	case badRequest(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(c, http.StatusBadGateway, "Could not update hotel booking")
	}
}

// POST /plan-stay
func (bc *BookingController) PlanStay(c *gin.Context) {
	var req PlanStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := services.ValidateGuest(req.GuestIdentity); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan := services.NewStayPlan(req.Nights, req.AlreadyBooked, req.People)
	selected := make(map[string]bool, len(req.Selections))
	for _, sel := range req.Selections {
		if err := plan.Select(sel); err != nil {
			utils.JSONError(c, http.StatusBadRequest, sel.Date+": "+err.Error())
			return
		}
		selected[sel.Date] = true
	}
	for _, d := range req.NoTable {
		if selected[d] {
			utils.JSONError(c, http.StatusBadRequest, d+": "+services.ErrNightConflict.Error())
			return
		}
		if err := plan.MarkNoTable(d); err != nil {
			utils.JSONError(c, http.StatusBadRequest, d+": "+err.Error())
			return
		}
	}

	out, err := plan.Submit(c.Request.Context(), bc.Batches, req.GuestIdentity)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, PlanStayResponse{StayPlanOutcome: out, Pending: plan.Pending()})
}
