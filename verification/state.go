// Package verification drives the guest-side resident check: a silent
// debounced match as the guest types, then phone or reference fallbacks.
package verification

import (
	"strings"

	"table-booking/models"
	"table-booking/utils"
)

type State string

const (
	StateWaiting        State = "waiting"
	StateChecking       State = "checking"
	StateAutoMatched    State = "auto_matched"
	StatePhonePrompt    State = "phone_prompt"
	StatePhoneVerifying State = "phone_verifying"
	StatePhoneVerified  State = "phone_verified"
	StateNoMatch        State = "no_match"
	StateManualEntry    State = "manual_entry"
	StateRefVerifying   State = "ref_verifying"
	StateRefVerified    State = "ref_verified"
	StateOTADetected    State = "ota_detected"
	StateUnverified     State = "unverified"
	StateDeclined       State = "declined"
)

// Interactive states belong to the guest; the silent check never touches them.
func (s State) Interactive() bool {
	switch s {
	case StatePhonePrompt, StatePhoneVerifying, StateManualEntry, StateRefVerifying, StateUnverified:
		return true
	}
	return false
}

func (s State) Matched() bool {
	switch s {
	case StateAutoMatched, StatePhoneVerified, StateRefVerified, StateOTADetected:
		return true
	}
	return false
}

const (
	MsgPhoneMismatch = "Phone number did not match. You can enter your booking reference below."
	MsgPhoneFailed   = "Could not verify phone. You can enter your booking reference instead."
	MsgRefFailed     = "Could not verify your booking reference."
)

// Identity is what the guest has typed so far.
type Identity struct {
	Date  string
	Name  string
	Email string
	Phone string
}

// Complete reports whether the inputs are worth checking.
func (id Identity) Complete() bool {
	return utils.ValidDate(id.Date) && utils.ValidName(id.Name) && utils.ValidEmail(id.Email)
}

// Key identifies a check; an unchanged key is never re-checked.
func (id Identity) Key() string {
	return strings.ToLower(strings.TrimSpace(id.Name)) + "|" +
		strings.ToLower(strings.TrimSpace(id.Email)) + "|" + id.Date
}

// Machine is the whole flow state. It is a value: Transition returns a new one.
type Machine struct {
	State    State
	Identity Identity

	// Generation increments on every identity edit.
	Generation uint64
	// Request identifies the call in flight; completions for older requests are dropped.
	Request uint64

	CheckedKey   string
	CheckedState State

	Match      models.MatchResult
	Error      string
	Reference  string
	AgentName  string
	InternalID int

	reported uint8
}

func NewMachine() Machine {
	return Machine{State: StateWaiting}
}

func (m Machine) hasReported(t models.MatchTier) bool {
	return m.reported&(1<<uint(t)) != 0
}

func (m *Machine) markReported(t models.MatchTier) {
	m.reported |= 1 << uint(t)
}
