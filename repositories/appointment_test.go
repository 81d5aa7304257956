package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func Test_Appointments_Are_Scoped_By_Shop_And_Ordered(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewAppointmentRepository(db, logs.GetLoggerFromLevel(slog.LevelError))
	at := time.Now().UTC()

	// Given Y submits after X for the same shop, and Z books another shop
	x := DiskAppointment{uuid.New(), "shop-s", "x", "Xavier", "0101", "Haircut", "Mon 10:00", at.Add(time.Minute)}
	y := DiskAppointment{uuid.New(), "shop-s", "y", "Yara", "0202", "Beard trim", "Mon 09:00", at.Add(2 * time.Minute)}
	z := DiskAppointment{uuid.New(), "shop-t", "z", "Zoe", "0303", "Haircut", "Tue 11:00", at}
	for _, a := range []DiskAppointment{y, z, x} {
		req.NoError(repository.StoreAppointment(a))
	}

	// When shop S lists its requests
	appointments, err := repository.GetAppointments("shop-s")
	req.NoError(err)

	// Then only its two requests are returned in submission order
	req.Equal([]DiskAppointment{x, y}, appointments)
}

func Test_No_Appointments(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewAppointmentRepository(db, logs.GetLoggerFromLevel(slog.LevelError))

	appointments, err := repository.GetAppointments("empty-shop")
	req.NoError(err)
	req.Empty(appointments)
}
