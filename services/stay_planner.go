package services

import (
	"context"
	"strings"

	"table-booking/models"
)

// StaySubmitter is what a StayPlan hands its choices to.
type StaySubmitter interface {
	PlanAndSubmitStay(ctx context.Context, plans []models.NightPlan, noTableDates []string, guest models.GuestIdentity) (models.StayPlanOutcome, error)
}

type plannedNight struct {
	status models.NightStatus
	plan   models.NightPlan
}

// StayPlan tracks what a resident wants for each night of their stay.
type StayPlan struct {
	people int
	order  []string
	nights map[string]*plannedNight
}

// NewStayPlan starts every night pending except those already booked.
func NewStayPlan(nights, alreadyBooked []string, people int) *StayPlan {
	booked := make(map[string]bool, len(alreadyBooked))
	for _, d := range alreadyBooked {
		booked[d] = true
	}

	p := &StayPlan{people: people, nights: make(map[string]*plannedNight, len(nights))}
	for _, d := range nights {
		if _, dup := p.nights[d]; dup {
			continue
		}
		status := models.NightPending
		if booked[d] {
			status = models.NightAlreadyBooked
		}
		p.order = append(p.order, d)
		p.nights[d] = &plannedNight{status: status}
	}
	return p
}

func (p *StayPlan) night(date string) (*plannedNight, error) {
	n, ok := p.nights[date]
	if !ok {
		return nil, ErrUnknownNight
	}
	if n.status == models.NightAlreadyBooked {
		return nil, ErrNightBooked
	}
	return n, nil
}

func (p *StayPlan) Status(date string) models.NightStatus {
	if n, ok := p.nights[date]; ok {
		return n.status
	}
	return ""
}

// Select chooses a period and time for a night. People defaults to the stay's party size.
func (p *StayPlan) Select(plan models.NightPlan) error {
	n, err := p.night(plan.Date)
	if err != nil {
		return err
	}
	if strings.TrimSpace(plan.Time) == "" {
		return ErrMissingFields
	}
	if plan.People <= 0 {
		plan.People = p.people
	}
	n.status = models.NightSelected
	n.plan = plan
	return nil
}

// ToggleNoTable flips a night between no_table and pending.
func (p *StayPlan) ToggleNoTable(date string) error {
	n, err := p.night(date)
	if err != nil {
		return err
	}
	if n.status == models.NightNoTable {
		n.status = models.NightPending
		return nil
	}
	n.status = models.NightNoTable
	n.plan = models.NightPlan{}
	return nil
}

// MarkNoTable sets a night to no_table. Repeating it changes nothing.
func (p *StayPlan) MarkNoTable(date string) error {
	n, err := p.night(date)
	if err != nil {
		return err
	}
	n.status = models.NightNoTable
	n.plan = models.NightPlan{}
	return nil
}

func (p *StayPlan) Clear(date string) error {
	n, err := p.night(date)
	if err != nil {
		return err
	}
	n.status = models.NightPending
	n.plan = models.NightPlan{}
	return nil
}

func (p *StayPlan) collect(status models.NightStatus) []string {
	out := []string{}
	for _, d := range p.order {
		if p.nights[d].status == status {
			out = append(out, d)
		}
	}
	return out
}

func (p *StayPlan) Plans() []models.NightPlan {
	out := []models.NightPlan{}
	for _, d := range p.order {
		if n := p.nights[d]; n.status == models.NightSelected {
			out = append(out, n.plan)
		}
	}
	return out
}

func (p *StayPlan) NoTableDates() []string { return p.collect(models.NightNoTable) }
func (p *StayPlan) Pending() []string      { return p.collect(models.NightPending) }

// CanSubmit needs at least one night selected or marked no_table.
func (p *StayPlan) CanSubmit() bool {
	for _, n := range p.nights {
		if n.status == models.NightSelected || n.status == models.NightNoTable {
			return true
		}
	}
	return false
}

func (p *StayPlan) Submit(ctx context.Context, s StaySubmitter, guest models.GuestIdentity) (models.StayPlanOutcome, error) {
	if !p.CanSubmit() {
		return models.StayPlanOutcome{}, ErrNothingToSubmit
	}
	return s.PlanAndSubmitStay(ctx, p.Plans(), p.NoTableDates(), guest)
}
