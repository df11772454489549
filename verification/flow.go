package verification

import (
	"context"
	"sync"
	"time"

	"table-booking/models"
)

const DefaultDebounce = 800 * time.Millisecond

// Verifier answers the three resident checks.
type Verifier interface {
	Match(ctx context.Context, date, name, email, phone string) (models.MatchResult, error)
	VerifyPhone(ctx context.Context, date, name, phone string) (models.PhoneVerifyResult, error)
	VerifyReference(ctx context.Context, date, reference string) (models.ReferenceVerifyResult, error)
}

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Flow runs a Machine: it owns the debounce timer, performs calls and
// feeds their results back in. Callbacks run without the lock held.
type Flow struct {
	mu       sync.Mutex
	m        Machine
	ctx      context.Context
	verifier Verifier
	sched    Scheduler
	debounce time.Duration
	timer    Timer
	wg       sync.WaitGroup

	onMatched func(models.MatchResult)
	onError   func(string)
}

type Option func(*Flow)

func WithScheduler(s Scheduler) Option { return func(f *Flow) { f.sched = s } }

func WithDebounce(d time.Duration) Option { return func(f *Flow) { f.debounce = d } }

func OnMatched(fn func(models.MatchResult)) Option { return func(f *Flow) { f.onMatched = fn } }

func OnError(fn func(string)) Option { return func(f *Flow) { f.onError = fn } }

func NewFlow(ctx context.Context, v Verifier, opts ...Option) *Flow {
	f := &Flow{
		m:        NewMachine(),
		ctx:      ctx,
		verifier: v,
		sched:    wallClock{},
		debounce: DefaultDebounce,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Flow) Snapshot() Machine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m
}

func (f *Flow) State() State {
	return f.Snapshot().State
}

// Wait blocks until every call started so far has reported back.
func (f *Flow) Wait() {
	f.wg.Wait()
}

func (f *Flow) Edit(id Identity)           { f.Dispatch(IdentityEdited{Identity: id}) }
func (f *Flow) SubmitPhone(phone string)   { f.Dispatch(PhoneSubmitted{Phone: phone}) }
func (f *Flow) ChooseReference()           { f.Dispatch(ChooseReference{}) }
func (f *Flow) SubmitReference(ref string) { f.Dispatch(ReferenceSubmitted{Reference: ref}) }
func (f *Flow) ContinueUnverified()        { f.Dispatch(ContinueUnverified{}) }
func (f *Flow) Decline()                   { f.Dispatch(Declined{}) }

func (f *Flow) Dispatch(ev Event) {
	f.mu.Lock()
	next, effects := Transition(f.m, ev)
	f.m = next

	var callbacks []func()
	for _, eff := range effects {
		switch e := eff.(type) {
		case ScheduleCheck:
			f.stopTimer()
			gen := e.Generation
			f.timer = f.sched.AfterFunc(f.debounce, func() { f.Dispatch(DebounceFired{Generation: gen}) })
		case CancelCheck:
			f.stopTimer()
		case CallMatch:
			f.spawn(func(ctx context.Context) Event {
				id := e.Identity
				res, err := f.verifier.Match(ctx, id.Date, id.Name, id.Email, id.Phone)
				return MatchCompleted{Request: e.Request, Result: res, Err: err}
			})
		case CallPhone:
			f.spawn(func(ctx context.Context) Event {
				res, err := f.verifier.VerifyPhone(ctx, e.Date, e.Name, e.Phone)
				return PhoneCompleted{Request: e.Request, Result: res, Err: err}
			})
		case CallReference:
			f.spawn(func(ctx context.Context) Event {
				res, err := f.verifier.VerifyReference(ctx, e.Date, e.Reference)
				return ReferenceCompleted{Request: e.Request, Result: res, Err: err}
			})
		case ReportMatched:
			if f.onMatched != nil {
				res := e.Result
				callbacks = append(callbacks, func() { f.onMatched(res) })
			}
		case ReportError:
			if f.onError != nil {
				msg := e.Message
				callbacks = append(callbacks, func() { f.onError(msg) })
			}
		}
	}
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

func (f *Flow) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Flow) spawn(call func(context.Context) Event) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.Dispatch(call(f.ctx))
	}()
}
