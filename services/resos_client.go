// services/resos_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"table-booking/config"
	"table-booking/models"
)

// ReservationReader lists the restaurant bookings already on a date.
type ReservationReader interface {
	BookingsForDate(ctx context.Context, date string) ([]models.Reservation, error)
}

// ReservationWriter creates one restaurant booking and returns its id.
type ReservationWriter interface {
	CreateBooking(ctx context.Context, payload models.BookingPayload) (string, error)
}

// OpeningHoursReader answers which periods run on a date and what times are free.
type OpeningHoursReader interface {
	OpeningHours(ctx context.Context, date string) ([]models.OpeningHour, error)
	AvailableTimes(ctx context.Context, date string, people int, periodID string, onlineOnly bool) ([]models.PeriodTimes, error)
}

const resosPageSize = 100

// ResosClient talks to the restaurant booking REST API.
type ResosClient struct {
	cfg  config.ResosConfig
	http *http.Client
}

func NewResosClient(cfg config.ResosConfig) *ResosClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &ResosClient{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

func (c *ResosClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("resos: %w", ErrNotConfigured)
	}

	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("resos %s: encode: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, fmt.Errorf("resos %s: build request: %w", path, err)
	}
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resos %s: %w: %v", path, ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ resOS %s %s HTTP %d", method, path, resp.StatusCode)
		return nil, fmt.Errorf("resos %s: %w: HTTP %d", path, ErrUpstream, resp.StatusCode)
	}
	return raw, nil
}

type resosBooking struct {
	ID     string `json:"_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	People int    `json:"people"`
	Guest  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"guest"`
	CustomFields []models.CustomFieldValue `json:"customFields"`
}

// BookingsForDate pages through every booking on date.
func (c *ResosClient) BookingsForDate(ctx context.Context, date string) ([]models.Reservation, error) {
	var out []models.Reservation
	for skip := 0; ; skip += resosPageSize {
		q := url.Values{}
		q.Set("fromDateTime", date+"T00:00:00")
		q.Set("toDateTime", date+"T23:59:59")
		q.Set("limit", strconv.Itoa(resosPageSize))
		q.Set("skip", strconv.Itoa(skip))

		raw, err := c.do(ctx, http.MethodGet, "/bookings", q, nil)
		if err != nil {
			return nil, err
		}
		var page []resosBooking
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("resos /bookings: %w: %v", ErrUpstream, err)
		}
		for _, b := range page {
			out = append(out, models.Reservation{
				ID:           b.ID,
				Date:         b.Date,
				Time:         b.Time,
				People:       b.People,
				GuestName:    b.Guest.Name,
				GuestEmail:   b.Guest.Email,
				GuestPhone:   b.Guest.Phone,
				CustomFields: b.CustomFields,
			})
		}
		if len(page) < resosPageSize {
			break
		}
	}
	return out, nil
}

// OpeningHours returns the periods running on date. Special periods for the
// date replace the regular weekly schedule.
func (c *ResosClient) OpeningHours(ctx context.Context, date string) ([]models.OpeningHour, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("opening hours: bad date %q: %w", date, err)
	}

	q := url.Values{}
	q.Set("showDeleted", "false")
	q.Set("onlySpecial", "false")
	raw, err := c.do(ctx, http.MethodGet, "/openingHours", q, nil)
	if err != nil {
		return nil, err
	}
	var all []models.OpeningHour
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("resos /openingHours: %w: %v", ErrUpstream, err)
	}
	return periodsForDate(all, day), nil
}

func periodsForDate(all []models.OpeningHour, day time.Time) []models.OpeningHour {
	date := day.Format(models.DateLayout)
	weekday := strings.ToLower(day.Weekday().String())

	var special, regular []models.OpeningHour
	for _, h := range all {
		if h.IsSpecial {
			if dateOnly(h.SpecialDate) == date {
				special = append(special, h)
			}
			continue
		}
		if h.ActiveDays[weekday] {
			regular = append(regular, h)
		}
	}
	if len(special) > 0 {
		return special
	}
	if regular == nil {
		return []models.OpeningHour{}
	}
	return regular
}

func (c *ResosClient) AvailableTimes(ctx context.Context, date string, people int, periodID string, onlineOnly bool) ([]models.PeriodTimes, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("people", strconv.Itoa(people))
	q.Set("onlyBookableOnline", strconv.FormatBool(onlineOnly))
	if periodID != "" {
		q.Set("openingHourId", periodID)
	}

	raw, err := c.do(ctx, http.MethodGet, "/bookingFlow/times", q, nil)
	if err != nil {
		return nil, err
	}
	var out []models.PeriodTimes
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("resos /bookingFlow/times: %w: %v", ErrUpstream, err)
	}
	return out, nil
}

// CreateBooking posts one booking. The API answers with a bare id string
// or an object carrying _id.
func (c *ResosClient) CreateBooking(ctx context.Context, payload models.BookingPayload) (string, error) {
	payload.Guest.Phone = FormatPhone(payload.Guest.Phone)

	raw, err := c.do(ctx, http.MethodPost, "/bookings", nil, payload)
	if err != nil {
		return "", err
	}
	id := parseCreatedID(raw)
	if id == "" {
		return "", fmt.Errorf("resos create booking: %w: no id in response", ErrUpstream)
	}
	return id, nil
}

func parseCreatedID(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var obj struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			return obj.ID
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// FormatPhone puts a UK-style number into +44 form. Empty stays empty.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	p := b.String()
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "0"):
		return "+44" + p[1:]
	}
	return "+44" + p
}
