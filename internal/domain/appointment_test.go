package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kyros-barber/KB-BookingService/pkg/ptr"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCanceled, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCanceled, true},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusCompleted, false},
		{StatusPending, AppointmentStatus("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestCanBeCanceledAndUpdated(t *testing.T) {
	tests := []struct {
		status       AppointmentStatus
		canCancel    bool
		canBeUpdated bool
	}{
		{StatusPending, true, true},
		{StatusConfirmed, true, true},
		{StatusInProgress, true, false},
		{StatusCompleted, false, false},
		{StatusCanceled, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.canCancel, a.CanBeCanceled())
			assert.Equal(t, tt.canBeUpdated, a.CanBeUpdated())
		})
	}
}

func TestResolveClientRef(t *testing.T) {
	t.Run("registered client wins", func(t *testing.T) {
		a := &Appointment{
			ClientID:         ptr.Ptr(int64(5)),
			ClientName:       ptr.Ptr("Анна"),
			ManualClientName: ptr.Ptr("Walk-in"),
		}
		ref := a.ResolveClientRef()
		assert.Equal(t, ClientRefRegistered, ref.Kind)
		assert.Equal(t, "Анна", ref.Name)
	})

	t.Run("walk-in name when no client record", func(t *testing.T) {
		a := &Appointment{ManualClientName: ptr.Ptr("Walk-in")}
		ref := a.ResolveClientRef()
		assert.Equal(t, ClientRefWalkIn, ref.Kind)
		assert.Equal(t, "Walk-in", ref.Name)
	})

	t.Run("client id without joined name falls back to walk-in", func(t *testing.T) {
		a := &Appointment{
			ClientID:         ptr.Ptr(int64(5)),
			ManualClientName: ptr.Ptr("Walk-in"),
		}
		ref := a.ResolveClientRef()
		assert.Equal(t, ClientRefWalkIn, ref.Kind)
	})

	t.Run("unknown when nothing is set", func(t *testing.T) {
		a := &Appointment{}
		ref := a.ResolveClientRef()
		assert.Equal(t, ClientRefUnknown, ref.Kind)
		assert.Equal(t, "Unknown", ref.Name)
	})

	t.Run("empty strings are ignored", func(t *testing.T) {
		a := &Appointment{
			ClientID:         ptr.Ptr(int64(5)),
			ClientName:       ptr.Ptr(""),
			ManualClientName: ptr.Ptr(""),
		}
		ref := a.ResolveClientRef()
		assert.Equal(t, ClientRefUnknown, ref.Kind)
	})
}

func TestServicesTotal(t *testing.T) {
	a := &Appointment{Services: []AppointmentService{
		{ServiceID: 1, PriceAtBooking: 1500},
		{ServiceID: 2, PriceAtBooking: 700.50},
	}}
	assert.InDelta(t, 2200.50, a.ServicesTotal(), 0.001)

	empty := &Appointment{}
	assert.Zero(t, empty.ServicesTotal())
}

func TestAggregateServices(t *testing.T) {
	t.Run("empty selection falls back to default duration", func(t *testing.T) {
		totals := AggregateServices(nil)
		assert.Equal(t, DefaultServiceDurationMinutes, totals.DurationMinutes)
		assert.Zero(t, totals.TotalPrice)
	})

	t.Run("sums durations and prices", func(t *testing.T) {
		totals := AggregateServices([]*Service{
			{DurationMinutes: 30, BasePrice: 1200},
			{DurationMinutes: 45, BasePrice: 800},
		})
		assert.Equal(t, 75, totals.DurationMinutes)
		assert.InDelta(t, 2000.0, totals.TotalPrice, 0.001)
	})

	t.Run("zero duration service uses the default", func(t *testing.T) {
		totals := AggregateServices([]*Service{
			{DurationMinutes: 0, BasePrice: 500},
			{DurationMinutes: 20, BasePrice: 300},
		})
		assert.Equal(t, DefaultServiceDurationMinutes+20, totals.DurationMinutes)
	})
}
