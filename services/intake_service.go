package services

import (
	"barber-lab/contract"
	"barber-lab/domain"
	"barber-lab/domain/event"
	"barber-lab/errors"
	"barber-lab/repositories"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AppointmentRequest is what a customer types in the booking form.
type AppointmentRequest struct {
	ShopID     domain.Identity `validate:"required"`
	CustomerID domain.Identity
	Name       string `validate:"required"`
	Phone      string `validate:"required"`
	Service    string `validate:"required"`
	Time       string `validate:"required"`
}

func (r AppointmentRequest) normalize() AppointmentRequest {
	return AppointmentRequest{
		ShopID:     domain.Identity(strings.TrimSpace(string(r.ShopID))),
		CustomerID: domain.Identity(strings.TrimSpace(string(r.CustomerID))),
		Name:       strings.TrimSpace(r.Name),
		Phone:      strings.TrimSpace(r.Phone),
		Service:    strings.TrimSpace(r.Service),
		Time:       strings.TrimSpace(r.Time),
	}
}

type IIntakeService interface {
	Submit(ctx context.Context, request AppointmentRequest) (domain.Appointment, error)
	ListAppointments(ctx context.Context, shop domain.Identity) ([]domain.Appointment, error)
	Watch(shop domain.Identity) contract.Subscription
}

// IntakeService is the append only log of booking requests.
// There is no confirmation, capacity or slot conflict handling.
type IntakeService struct {
	log        *slog.Logger
	repository repositories.IAppointmentRepository
	broker     contract.IBroker
	clock      *domain.MonotonicClock
	validate   *validator.Validate
}

func NewIntakeService(log *slog.Logger, repository repositories.IAppointmentRepository,
	broker contract.IBroker, clock *domain.MonotonicClock) *IntakeService {
	return &IntakeService{
		log:        log,
		repository: repository,
		broker:     broker,
		clock:      clock,
		validate:   validator.New(),
	}
}

// Submit validates the trimmed request and appends it to the shop log.
// An incomplete request is refused before any write.
func (s *IntakeService) Submit(ctx context.Context, request AppointmentRequest) (domain.Appointment, error) {
	request = request.normalize()
	if err := s.validate.Struct(request); err != nil {
		return domain.Appointment{}, fmt.Errorf("%w: %v", errors.ErrInvalidAppointment, err)
	}
	if !request.ShopID.Valid() || (request.CustomerID != "" && !request.CustomerID.Valid()) {
		return domain.Appointment{}, errors.ErrInvalidIdentity
	}
	if err := ctx.Err(); err != nil {
		return domain.Appointment{}, err
	}

	appointment := domain.Appointment{
		ID:            uuid.New(),
		ShopID:        request.ShopID,
		CustomerID:    request.CustomerID,
		CustomerName:  request.Name,
		CustomerPhone: request.Phone,
		Service:       request.Service,
		Time:          request.Time,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.repository.StoreAppointment(repositories.ToDiskAppointment(appointment)); err != nil {
		s.log.Error("Failed to store appointment", "shop", request.ShopID, "error", err)
		return domain.Appointment{}, fmt.Errorf("store appointment: %w", err)
	}
	s.broker.Publish(event.AppointmentSubmitted{Appointment: appointment})
	return appointment, nil
}

// ListAppointments returns the requests of one shop in submission order.
// Read failures degrade to an empty list.
func (s *IntakeService) ListAppointments(_ context.Context, shop domain.Identity) ([]domain.Appointment, error) {
	if !shop.Valid() {
		return []domain.Appointment{}, nil
	}
	appointments, err := s.repository.GetAppointments(shop)
	if err != nil {
		s.log.Error("Failed to list appointments", "shop", shop, "error", err)
		return []domain.Appointment{}, nil
	}
	return repositories.FromDiskAppointments(appointments), nil
}

// Watch subscribes to the requests submitted to a shop from now on.
func (s *IntakeService) Watch(shop domain.Identity) contract.Subscription {
	return s.broker.Subscribe(event.ShopTopic(shop))
}
