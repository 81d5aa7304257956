//go:generate go run go.uber.org/mock/mockgen -source=appointment.go -destination=../mocks/mock_appointment_repository.go -package=mocks
package repositories

import (
	"barber-lab/codec"
	"barber-lab/domain"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IAppointmentRepository interface {
	StoreAppointment(appointment DiskAppointment) error
	GetAppointments(shop domain.Identity) ([]DiskAppointment, error)
}

type AppointmentRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAppointmentRepository(db *badger.DB, log *slog.Logger) AppointmentRepository {
	return AppointmentRepository{db: db, log: log}
}

type DiskAppointment struct {
	ID            uuid.UUID `cbor:"id"`
	Shop          string    `cbor:"shop"`
	Customer      string    `cbor:"customer,omitempty"`
	CustomerName  string    `cbor:"customer_name"`
	CustomerPhone string    `cbor:"customer_phone"`
	Service       string    `cbor:"service"`
	Time          string    `cbor:"time"`
	At            time.Time `cbor:"at"`
}

// StoreAppointment appends a request to the shop log.
// The key is "appt:{shop}\x00{timestamp_padded}\x00{uuid}" so a prefix scan
// returns the requests in submission order.
func (a AppointmentRepository) StoreAppointment(appointment DiskAppointment) error {
	bytes, err := codec.Marshal(appointment)
	if err != nil {
		return fmt.Errorf("marshal appointment: %w", err)
	}
	key := orderedKey(appointmentPrefix(domain.Identity(appointment.Shop)), appointment.At, appointment.ID)
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, bytes)
	})
}

// GetAppointments lists the requests of a single shop, oldest first.
func (a AppointmentRepository) GetAppointments(shop domain.Identity) ([]DiskAppointment, error) {
	var values [][]byte
	err := a.db.View(func(txn *badger.Txn) error {
		var err error
		values, err = scanPrefix(txn, appointmentPrefix(shop), false, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	appointments := make([]DiskAppointment, 0, len(values))
	for _, v := range values {
		var appointment DiskAppointment
		if err = codec.Unmarshal(v, &appointment); err != nil {
			return nil, fmt.Errorf("unmarshal appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}
	a.log.Debug("Appointments loaded", "shop", shop, "count", len(appointments))
	return appointments, nil
}

func FromDiskAppointment(appointment DiskAppointment) domain.Appointment {
	return domain.Appointment{
		ID:            appointment.ID,
		ShopID:        domain.Identity(appointment.Shop),
		CustomerID:    domain.Identity(appointment.Customer),
		CustomerName:  appointment.CustomerName,
		CustomerPhone: appointment.CustomerPhone,
		Service:       appointment.Service,
		Time:          appointment.Time,
		CreatedAt:     appointment.At.UTC(),
	}
}

func ToDiskAppointment(appointment domain.Appointment) DiskAppointment {
	return DiskAppointment{
		ID:            appointment.ID,
		Shop:          string(appointment.ShopID),
		Customer:      string(appointment.CustomerID),
		CustomerName:  appointment.CustomerName,
		CustomerPhone: appointment.CustomerPhone,
		Service:       appointment.Service,
		Time:          appointment.Time,
		At:            appointment.CreatedAt.UTC(),
	}
}

func FromDiskAppointments(appointments []DiskAppointment) []domain.Appointment {
	return lo.Map(appointments, func(item DiskAppointment, _ int) domain.Appointment {
		return FromDiskAppointment(item)
	})
}
