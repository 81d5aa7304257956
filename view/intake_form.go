package view

import (
	"barber-lab/domain"
	"barber-lab/errors"
	"barber-lab/services"
	"context"
	"log/slog"
	"sync"
)

type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Submitter is the part of the intake service the booking form needs.
type Submitter interface {
	Submit(ctx context.Context, request services.AppointmentRequest) (domain.Appointment, error)
}

// IntakeForm is the booking panel of one shop.
// Closed -> Open -> Submitting -> Closed on success, back to Open on failure.
type IntakeForm struct {
	mu        sync.Mutex
	log       *slog.Logger
	submitter Submitter
	shop      domain.Identity
	customer  domain.Identity
	state     FormState
	fields    services.AppointmentRequest
}

func NewIntakeForm(log *slog.Logger, submitter Submitter, shop, customer domain.Identity) *IntakeForm {
	return &IntakeForm{log: log, submitter: submitter, shop: shop, customer: customer}
}

func (f *IntakeForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *IntakeForm) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormClosed {
		f.state = FormOpen
	}
}

// Cancel hides the form; what was typed stays for the next Open.
func (f *IntakeForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormOpen {
		f.state = FormClosed
	}
}

// Fill replaces the typed fields. Shop and customer are fixed by the form.
func (f *IntakeForm) Fill(name, phone, service, time string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Name = name
	f.fields.Phone = phone
	f.fields.Service = service
	f.fields.Time = time
}

func (f *IntakeForm) Fields() services.AppointmentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.request()
}

// Submit runs one submission at a time.
func (f *IntakeForm) Submit(ctx context.Context) (domain.Appointment, error) {
	f.mu.Lock()
	switch f.state {
	case FormClosed:
		f.mu.Unlock()
		return domain.Appointment{}, errors.ErrFormClosed
	case FormSubmitting:
		f.mu.Unlock()
		return domain.Appointment{}, errors.ErrSubmissionInProgress
	}
	f.state = FormSubmitting
	request := f.request()
	f.mu.Unlock()

	appointment, err := f.submitter.Submit(ctx, request)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.log.Error("Appointment not submitted, form kept open", "shop", f.shop, "error", err)
		f.state = FormOpen
		return domain.Appointment{}, err
	}
	f.fields = services.AppointmentRequest{}
	f.state = FormClosed
	return appointment, nil
}

func (f *IntakeForm) request() services.AppointmentRequest {
	r := f.fields
	r.ShopID = f.shop
	r.CustomerID = f.customer
	return r
}
