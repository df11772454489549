package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking/services"
	"table-booking/utils"
)

type AvailableTimesRequest struct {
	Date     string `json:"date" binding:"required"`
	People   int    `json:"people" binding:"required,min=1"`
	PeriodID string `json:"period_id"`
	Resident bool   `json:"resident"`
}

type AvailableTimesMultiRequest struct {
	Dates             []string `json:"dates" binding:"required"`
	People            int      `json:"people" binding:"required,min=1"`
	ResidentBookingID int      `json:"resident_booking_id"`
}

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: svc}
}

// GET /opening-hours?date=
func (ac *AvailabilityController) OpeningHours(c *gin.Context) {
	date := c.Query("date")
	if !utils.ValidDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date format")
		return
	}
	periods, err := ac.Availability.OpeningPeriods(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Could not load opening hours")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, periods)
}

// POST /available-times
func (ac *AvailabilityController) AvailableTimes(c *gin.Context) {
	var req AvailableTimesRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	slots, err := ac.Availability.AvailableTimes(c.Request.Context(), req.Date, req.People, req.PeriodID, !req.Resident)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Could not load available times")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, slots)
}

// POST /available-times-multi
func (ac *AvailabilityController) AvailableTimesMulti(c *gin.Context) {
	var req AvailableTimesMultiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	days := ac.Availability.TimesForDates(c.Request.Context(), req.Dates, req.People, req.ResidentBookingID > 0)
	utils.JSONSuccess(c, http.StatusOK, days)
}
