package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"table-booking/models"
)

func TestDuplicateCheckerMatchesEmailOrPhone(t *testing.T) {
	res := &fakeReservations{byDate: map[string][]models.Reservation{day: {
		{Time: "18:00", People: 2, GuestEmail: "Ann@X.com"},
		{Time: "20:00", People: 4, GuestPhone: "+44 7700 900123"},
	}}}
	d := NewDuplicateChecker(res)
	ctx := context.Background()

	assert.Equal(t, models.DuplicateCheck{Duplicate: true, ExistingTime: "18:00", ExistingPeople: 2},
		d.Check(ctx, day, " ann@x.com", ""))
	assert.Equal(t, models.DuplicateCheck{Duplicate: true, ExistingTime: "20:00", ExistingPeople: 4},
		d.Check(ctx, day, "other@x.com", "07700900123"))
	assert.False(t, d.Check(ctx, day, "other@x.com", "").Duplicate)
}

func TestDuplicateCheckerFailsOpen(t *testing.T) {
	d := NewDuplicateChecker(&fakeReservations{readErr: errBoom})
	assert.False(t, d.Check(context.Background(), day, "ann@x.com", "").Duplicate)
}
