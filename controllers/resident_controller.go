package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"table-booking/models"
	"table-booking/services"
	"table-booking/utils"
)

type CheckResidentRequest struct {
	Date  string `json:"date" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyPhoneRequest struct {
	Date  string `json:"date" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type VerifyReferenceRequest struct {
	Date      string `json:"date" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// VerifyLinkRequest comes from a link the hotel sends a resident.
type VerifyLinkRequest struct {
	BookingID models.FlexInt `json:"booking_id"`
	GuestID   models.FlexInt `json:"guest_id"`
	Surname   string         `json:"surname"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
}

type CheckGroupRequest struct {
	Date      string         `json:"date" binding:"required"`
	BookingID models.FlexInt `json:"booking_id"`
	GroupID   *int           `json:"group_id"`
	Covers    int            `json:"covers"`
}

type CheckGroupResponse struct {
	models.GroupCheckResult
	Scenario      models.GroupScenario `json:"scenario"`
	SuggestedNote string               `json:"suggested_note,omitempty"`
}

type PrefetchRequest struct {
	Date string `json:"date" binding:"required"`
}

type ResidentController struct {
	Matcher *services.ResidentMatcher
	Lookup  *services.ResidentLookup
	Groups  *services.GroupCoordinator
	Stays   *services.StaySource
}

func NewResidentController(matcher *services.ResidentMatcher, lookup *services.ResidentLookup, groups *services.GroupCoordinator, stays *services.StaySource) *ResidentController {
	return &ResidentController{Matcher: matcher, Lookup: lookup, Groups: groups, Stays: stays}
}

// bindDated binds a JSON body and rejects a malformed date.
func bindDated(c *gin.Context, req any, date func() string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	if !utils.ValidDate(date()) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date format")
		return false
	}
	return true
}

// POST /check-resident
func (rc *ResidentController) CheckResident(c *gin.Context) {
	var req CheckResidentRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	res := rc.Matcher.Match(c.Request.Context(), req.Date, req.Name, req.Email, req.Phone)
	utils.JSONSuccess(c, http.StatusOK, res.Response())
}

// POST /verify-resident-phone
func (rc *ResidentController) VerifyPhone(c *gin.Context) {
	var req VerifyPhoneRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	res := rc.Matcher.VerifyPhone(c.Request.Context(), req.Date, req.Name, req.Phone)
	utils.JSONSuccess(c, http.StatusOK, res.Response())
}

// POST /verify-resident-reference
func (rc *ResidentController) VerifyReference(c *gin.Context) {
	var req VerifyReferenceRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	res := rc.Matcher.VerifyReference(c.Request.Context(), req.Date, req.Reference)
	utils.JSONSuccess(c, http.StatusOK, res.Response())
}

// POST /verify-resident
// Link parameters (?bid=&gid=&surname=&email=&phone=) fill anything the body leaves out.
func (rc *ResidentController) VerifyLink(c *gin.Context) {
	var req VerifyLinkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
			return
		}
	}
	if req.BookingID == 0 {
		req.BookingID = models.FlexInt(services.ParseLinkID(c.Query("bid")))
	}
	if req.GuestID == 0 {
		req.GuestID = models.FlexInt(services.ParseLinkID(c.Query("gid")))
	}
	if req.Surname == "" {
		req.Surname = c.Query("surname")
	}
	if req.Email == "" {
		req.Email = c.Query("email")
	}
	if req.Phone == "" {
		req.Phone = c.Query("phone")
	}
	info, err := rc.Lookup.VerifyFromLink(c.Request.Context(), int(req.BookingID), services.LinkFactors{
		GuestID: int(req.GuestID),
		Surname: strings.TrimSpace(req.Surname),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
	})
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, info)
	case errors.Is(err, services.ErrFactorRequired):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStayNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, services.ErrStayCancelled):
		utils.JSONError(c, http.StatusGone, "Booking is cancelled")
	case errors.Is(err, services.ErrNotVerified):
		utils.JSONError(c, http.StatusForbidden, "Could not verify guest details")
	default:
		utils.JSONError(c, http.StatusBadGateway, "Booking system unavailable")
	}
}

// POST /check-group
func (rc *ResidentController) CheckGroup(c *gin.Context) {
	var req CheckGroupRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	res := rc.Groups.CheckGroup(c.Request.Context(), req.Date, int(req.BookingID), req.GroupID, req.Covers)
	scenario := res.Scenario(req.Covers)
	utils.JSONSuccess(c, http.StatusOK, CheckGroupResponse{
		GroupCheckResult: res,
		Scenario:         scenario,
		SuggestedNote:    scenario.SuggestedNote(),
	})
}

// POST /prefetch-staying warms the staying list and returns straight away.
func (rc *ResidentController) PrefetchStaying(c *gin.Context) {
	var req PrefetchRequest
	if !bindDated(c, &req, func() string { return req.Date }) {
		return
	}
	go func(date string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rc.Stays.Prefetch(ctx, date)
	}(req.Date)
	utils.JSONSuccess(c, http.StatusAccepted, gin.H{"date": req.Date})
}
