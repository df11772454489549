// services/newbook_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"table-booking/config"
	"table-booking/models"
)

// StayFetcher lists the stays in house on a date.
type StayFetcher interface {
	StayingGuests(ctx context.Context, date string) ([]models.StayRecord, error)
}

// StayBookingGetter loads one stay by its stay-system id.
type StayBookingGetter interface {
	StayBooking(ctx context.Context, bookingID int) (*models.StayRecord, error)
}

// StayAnnotator writes a custom field onto a stay.
type StayAnnotator interface {
	SetCustomField(ctx context.Context, bookingID int, name, value string) error
}

// NewBookClient talks to the hotel PMS REST API.
type NewBookClient struct {
	cfg  config.NewBookConfig
	http *http.Client
}

func NewNewBookClient(cfg config.NewBookConfig) *NewBookClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return &NewBookClient{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

type newbookEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type newbookContact struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type newbookGuest struct {
	ID             models.FlexInt   `json:"id"`
	PrimaryClient  models.FlexInt   `json:"primary_client"`
	Firstname      string           `json:"firstname"`
	Lastname       string           `json:"lastname"`
	ContactDetails []newbookContact `json:"contact_details"`
}

type newbookBooking struct {
	BookingID          models.FlexInt `json:"booking_id"`
	BookingStatus      string         `json:"booking_status"`
	PeriodFrom         string         `json:"period_from"`
	PeriodTo           string         `json:"period_to"`
	SiteName           string         `json:"site_name"`
	BookingsGroupID    models.FlexInt `json:"bookings_group_id"`
	BookingReferenceID string         `json:"booking_reference_id"`
	TravelAgentID      models.FlexInt `json:"travel_agent_id"`
	TravelAgentName    string         `json:"travel_agent_name"`
	Adults             models.FlexInt `json:"booking_adults"`
	Children           models.FlexInt `json:"booking_children"`
	Infants            models.FlexInt `json:"booking_infants"`
	Guests             []newbookGuest `json:"guests"`
}

func (c *NewBookClient) configured() bool {
	return c.cfg.APIKey != "" && c.cfg.Username != ""
}

// call posts one action and returns the "data" payload.
func (c *NewBookClient) call(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	if !c.configured() {
		return nil, fmt.Errorf("newbook: %w", ErrNotConfigured)
	}

	body := map[string]any{"region": c.cfg.Region, "api_key": c.cfg.APIKey}
	for k, v := range params {
		body[k] = v
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("newbook %s: encode: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+action, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("newbook %s: build request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newbook %s: %w: %v", action, ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ NewBook %s HTTP %d", action, resp.StatusCode)
		return nil, fmt.Errorf("newbook %s: %w: HTTP %d", action, ErrUpstream, resp.StatusCode)
	}

	var env newbookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("newbook %s: %w: bad JSON: %v", action, ErrUpstream, err)
	}
	if !env.Success {
		log.Printf("❌ NewBook %s failed: %s", action, env.Message)
		return nil, fmt.Errorf("newbook %s: %w: %s", action, ErrUpstream, env.Message)
	}
	return env.Data, nil
}

// StayingGuests lists every booking in house on date (cancelled ones included).
func (c *NewBookClient) StayingGuests(ctx context.Context, date string) ([]models.StayRecord, error) {
	data, err := c.call(ctx, "bookings_list", map[string]any{
		"period_from": date + " 00:00:00",
		"period_to":   date + " 23:59:59",
		"list_type":   "staying",
	})
	if err != nil {
		return nil, err
	}

	var raw []newbookBooking
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("newbook bookings_list: %w: %v", ErrUpstream, err)
		}
	}

	out := make([]models.StayRecord, 0, len(raw))
	for _, b := range raw {
		out = append(out, b.toStayRecord())
	}
	return out, nil
}

func (c *NewBookClient) StayBooking(ctx context.Context, bookingID int) (*models.StayRecord, error) {
	data, err := c.call(ctx, "bookings_get", map[string]any{"booking_id": bookingID})
	if err != nil {
		return nil, err
	}

	// bookings_get answers with either the booking or a one-element list.
	var one newbookBooking
	if err := json.Unmarshal(data, &one); err != nil {
		var list []newbookBooking
		if lerr := json.Unmarshal(data, &list); lerr != nil {
			return nil, fmt.Errorf("newbook bookings_get: %w: %v", ErrUpstream, err)
		}
		if len(list) == 0 {
			return nil, ErrStayNotFound
		}
		one = list[0]
	}
	if one.BookingID == 0 {
		return nil, ErrStayNotFound
	}
	rec := one.toStayRecord()
	return &rec, nil
}

func (c *NewBookClient) SetCustomField(ctx context.Context, bookingID int, name, value string) error {
	_, err := c.call(ctx, "instance_custom_fields_set", map[string]any{
		"instance_id":   bookingID,
		"instance_type": "booking",
		"fields":        []map[string]string{{"name": name, "value": value}},
	})
	return err
}

func (b newbookBooking) toStayRecord() models.StayRecord {
	rec := models.StayRecord{
		BookingID:       int(b.BookingID),
		CheckIn:         dateOnly(b.PeriodFrom),
		CheckOut:        dateOnly(b.PeriodTo),
		RoomLabel:       b.SiteName,
		Status:          models.StayActive,
		ReferenceCode:   strings.TrimSpace(b.BookingReferenceID),
		TravelAgentName: strings.TrimSpace(b.TravelAgentName),
		Occupancy:       int(b.Adults + b.Children + b.Infants),
	}
	rec.ViaAgent = b.TravelAgentID > 0 || rec.TravelAgentName != ""
	rec.Nights = nightsBetween(rec.CheckIn, rec.CheckOut)

	switch strings.ToLower(strings.TrimSpace(b.BookingStatus)) {
	case "cancelled", "canceled":
		rec.Status = models.StayCancelled
	}

	if b.BookingsGroupID > 0 {
		gid := int(b.BookingsGroupID)
		rec.GroupID = &gid
	}

	rec.Guests = make([]models.GuestCandidate, 0, len(b.Guests))
	for _, g := range b.Guests {
		cand := models.GuestCandidate{
			GuestID:   int(g.ID),
			FirstName: strings.TrimSpace(g.Firstname),
			LastName:  strings.TrimSpace(g.Lastname),
			IsPrimary: g.PrimaryClient == 1,
		}
		var mobile, phone string
		for _, cd := range g.ContactDetails {
			switch strings.ToLower(cd.Type) {
			case "email":
				if cand.Email == "" {
					cand.Email = strings.TrimSpace(cd.Content)
				}
			case "mobile":
				if mobile == "" {
					mobile = strings.TrimSpace(cd.Content)
				}
			case "phone":
				if phone == "" {
					phone = strings.TrimSpace(cd.Content)
				}
			}
		}
		cand.Phone = mobile
		if cand.Phone == "" {
			cand.Phone = phone
		}
		rec.Guests = append(rec.Guests, cand)
	}
	return rec
}

// dateOnly keeps the YYYY-MM-DD prefix of a PMS timestamp.
func dateOnly(ts string) string {
	ts = strings.TrimSpace(ts)
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// nightsBetween lists checkIn up to but excluding checkOut.
func nightsBetween(checkIn, checkOut string) []string {
	from, err1 := time.Parse(models.DateLayout, checkIn)
	to, err2 := time.Parse(models.DateLayout, checkOut)
	if err1 != nil || err2 != nil || !to.After(from) {
		return []string{}
	}
	nights := []string{}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d.Format(models.DateLayout))
	}
	return nights
}

func bookingIDString(id int) string {
	return strconv.Itoa(id)
}
