package verification

import "table-booking/models"

// Event is anything that can move the flow.
type Event interface{ isEvent() }

type IdentityEdited struct{ Identity Identity }

type DebounceFired struct{ Generation uint64 }

type MatchCompleted struct {
	Request uint64
	Result  models.MatchResult
	Err     error
}

type PhoneSubmitted struct{ Phone string }

type PhoneCompleted struct {
	Request uint64
	Result  models.PhoneVerifyResult
	Err     error
}

// ChooseReference is the guest opting to type a booking reference.
type ChooseReference struct{}

type ReferenceSubmitted struct{ Reference string }

type ReferenceCompleted struct {
	Request uint64
	Result  models.ReferenceVerifyResult
	Err     error
}

// ContinueUnverified books with the unchecked reference attached.
type ContinueUnverified struct{}

// Declined is the guest saying they are not staying at the hotel.
type Declined struct{}

func (IdentityEdited) isEvent()     {}
func (DebounceFired) isEvent()      {}
func (MatchCompleted) isEvent()     {}
func (PhoneSubmitted) isEvent()     {}
func (PhoneCompleted) isEvent()     {}
func (ChooseReference) isEvent()    {}
func (ReferenceSubmitted) isEvent() {}
func (ReferenceCompleted) isEvent() {}
func (ContinueUnverified) isEvent() {}
func (Declined) isEvent()           {}

// Effect is work the runner must do after a transition.
type Effect interface{ isEffect() }

type ScheduleCheck struct{ Generation uint64 }

type CancelCheck struct{}

type CallMatch struct {
	Request  uint64
	Identity Identity
}

type CallPhone struct {
	Request uint64
	Date    string
	Name    string
	Phone   string
}

type CallReference struct {
	Request   uint64
	Date      string
	Reference string
}

type ReportMatched struct{ Result models.MatchResult }

type ReportError struct{ Message string }

func (ScheduleCheck) isEffect() {}
func (CancelCheck) isEffect()   {}
func (CallMatch) isEffect()     {}
func (CallPhone) isEffect()     {}
func (CallReference) isEffect() {}
func (ReportMatched) isEffect() {}
func (ReportError) isEffect()   {}
