package verification

import (
	"strings"

	"table-booking/models"
)

// Transition is the whole flow: it never blocks and never calls out.
// Work to do is returned as effects for the runner.
func Transition(m Machine, ev Event) (Machine, []Effect) {
	if m.State == StateDeclined {
		if e, ok := ev.(IdentityEdited); ok {
			m.Identity = e.Identity
		}
		return m, nil
	}

	switch e := ev.(type) {
	case IdentityEdited:
		return onEdit(m, e)
	case DebounceFired:
		return onDebounce(m, e)
	case MatchCompleted:
		return onMatch(m, e)
	case PhoneSubmitted:
		return onPhoneSubmitted(m, e)
	case PhoneCompleted:
		return onPhone(m, e)
	case ChooseReference:
		if m.State == StatePhonePrompt || m.State == StateNoMatch {
			m.State = StateManualEntry
			return m, []Effect{CancelCheck{}}
		}
	case ReferenceSubmitted:
		return onReferenceSubmitted(m, e)
	case ReferenceCompleted:
		return onReference(m, e)
	case ContinueUnverified:
		if m.State == StateUnverified {
			res := models.MatchResult{Tier: models.TierNone, UnverifiedReference: m.Reference}
			m.Match = res
			effects := m.report(res)
			return m, effects
		}
	case Declined:
		m.State = StateDeclined
		return m, []Effect{CancelCheck{}}
	}
	return m, nil
}

// guestOwned states only change on the guest's own actions.
func (s State) guestOwned() bool {
	switch s {
	case StatePhoneVerified, StateRefVerified, StateOTADetected:
		return true
	}
	return s.Interactive()
}

func onEdit(m Machine, e IdentityEdited) (Machine, []Effect) {
	m.Identity = e.Identity
	m.Generation++

	if m.State.guestOwned() {
		return m, nil
	}
	if !m.Identity.Complete() {
		m.State = StateWaiting
		return m, []Effect{CancelCheck{}}
	}
	if m.Identity.Key() == m.CheckedKey {
		if m.State == StateChecking {
			return m, nil
		}
		if m.CheckedState != "" {
			m.State = m.CheckedState
			return m, []Effect{CancelCheck{}}
		}
	}
	m.State = StateWaiting
	return m, []Effect{ScheduleCheck{Generation: m.Generation}}
}

func onDebounce(m Machine, e DebounceFired) (Machine, []Effect) {
	if e.Generation != m.Generation || m.State != StateWaiting || !m.Identity.Complete() {
		return m, nil
	}
	key := m.Identity.Key()
	if key == m.CheckedKey && m.CheckedState != "" {
		m.State = m.CheckedState
		return m, nil
	}
	m.CheckedKey = key
	m.CheckedState = ""
	m.Request++
	m.State = StateChecking
	m.Error = ""
	return m, []Effect{CallMatch{Request: m.Request, Identity: m.Identity}}
}

func onMatch(m Machine, e MatchCompleted) (Machine, []Effect) {
	if m.State != StateChecking || e.Request != m.Request {
		return m, nil
	}
	res := e.Result
	if e.Err != nil {
		res = models.MatchResult{Tier: models.TierUnavailable}
	}
	m.Match = res

	var effects []Effect
	switch {
	case res.Tier == models.TierExact && res.Record != nil:
		m.State = StateAutoMatched
		effects = m.report(res)
	case res.Tier == models.TierSurname && res.PhoneOnFile:
		m.State = StatePhonePrompt
	case res.Tier == models.TierSurname:
		m.State = StateManualEntry
	default:
		m.State = StateNoMatch
	}
	m.CheckedState = m.State
	return m, effects
}

func onPhoneSubmitted(m Machine, e PhoneSubmitted) (Machine, []Effect) {
	phone := strings.TrimSpace(e.Phone)
	if m.State != StatePhonePrompt || phone == "" {
		return m, nil
	}
	m.Identity.Phone = phone
	m.Request++
	m.State = StatePhoneVerifying
	m.Error = ""
	return m, []Effect{
		CancelCheck{},
		CallPhone{Request: m.Request, Date: m.Identity.Date, Name: m.Identity.Name, Phone: phone},
	}
}

func onPhone(m Machine, e PhoneCompleted) (Machine, []Effect) {
	if m.State != StatePhoneVerifying || e.Request != m.Request {
		return m, nil
	}
	switch {
	case e.Err != nil:
		m.State = StateManualEntry
		m.Error = MsgPhoneFailed
		return m, []Effect{ReportError{Message: m.Error}}
	case !e.Result.Verified:
		m.State = StateManualEntry
		m.Error = MsgPhoneMismatch
		return m, []Effect{ReportError{Message: m.Error}}
	}
	m.State = StatePhoneVerified
	res := models.MatchResult{Tier: models.TierExact, Record: e.Result.Record}
	m.Match = res
	effects := m.report(res)
	return m, effects
}

func onReferenceSubmitted(m Machine, e ReferenceSubmitted) (Machine, []Effect) {
	ref := strings.TrimSpace(e.Reference)
	switch m.State {
	case StateManualEntry, StateNoMatch, StateUnverified:
	default:
		return m, nil
	}
	if ref == "" {
		return m, nil
	}
	m.Reference = ref
	m.Request++
	m.State = StateRefVerifying
	m.Error = ""
	return m, []Effect{
		CancelCheck{},
		CallReference{Request: m.Request, Date: m.Identity.Date, Reference: ref},
	}
}

func onReference(m Machine, e ReferenceCompleted) (Machine, []Effect) {
	if m.State != StateRefVerifying || e.Request != m.Request {
		return m, nil
	}
	if e.Err != nil || !e.Result.Verified {
		m.State = StateUnverified
		if e.Err != nil {
			m.Error = MsgRefFailed
			return m, []Effect{ReportError{Message: m.Error}}
		}
		return m, nil
	}

	rec := e.Result.Record
	if e.Result.AgentMatch {
		m.State = StateOTADetected
		m.AgentName = e.Result.AgentName
		m.InternalID = e.Result.InternalID
		if rec == nil || rec.BookingID != e.Result.InternalID {
			rec = &models.StayRecord{BookingID: e.Result.InternalID, Status: models.StayActive}
		}
	} else {
		m.State = StateRefVerified
	}
	res := models.MatchResult{Tier: models.TierExact, Record: rec}
	m.Match = res
	effects := m.report(res)
	return m, effects
}

func (m *Machine) report(res models.MatchResult) []Effect {
	if m.hasReported(res.Tier) {
		return nil
	}
	m.markReported(res.Tier)
	return []Effect{ReportMatched{Result: res}}
}
