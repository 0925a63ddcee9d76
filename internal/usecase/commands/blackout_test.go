//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blackoutFixture struct {
	store    *memStore
	clock    *clock.MockClock
	commands commands.BlackoutCommands
}

func newBlackoutFixture() *blackoutFixture {
	store := newMemStore()
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, testLoc))
	return &blackoutFixture{
		store:    store,
		clock:    clk,
		commands: commands.NewBlackoutCommands(&memUnitOfWork{store: store}, clk, testLoc),
	}
}

func (f *blackoutFixture) seedReservation(t *testing.T, studio booking.Studio, date, start, end string, status booking.Status) {
	t.Helper()

	d, err := time.ParseInLocation(booking.DateLayout, date, testLoc)
	require.NoError(t, err)
	startMin, err := booking.ToMinutes(start)
	require.NoError(t, err)
	endMin, err := booking.ToMinutes(end)
	require.NoError(t, err)
	phone, err := booking.NewPhone("9876543210")
	require.NoError(t, err)

	id := uuid.New()
	now := f.clock.Now()
	res := booking.ReconstructReservation(
		id, studio, d, startMin, endMin, status, phone,
		nil, nil, nil, nil, nil, false, now, now, nil,
	)
	f.store.reservations[id] = *res
}

func TestBlackoutCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newBlackoutFixture()

		slot, err := f.commands.Create(ctx, commands.CreateBlackoutInput{
			Studio:    booking.StudioA.String(),
			Date:      "2026-09-10",
			Start:     "10:00",
			End:       "12:00",
			CreatedBy: "staff-1",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StudioA, slot.Studio)
		assert.False(t, slot.Available)
		assert.Equal(t, "staff-1", slot.CreatedBy)
	})

	t.Run("duplicate slot", func(t *testing.T) {
		f := newBlackoutFixture()

		in := commands.CreateBlackoutInput{
			Studio: booking.StudioA.String(),
			Date:   "2026-09-10",
			Start:  "10:00",
			End:    "12:00",
		}
		_, err := f.commands.Create(ctx, in)
		require.NoError(t, err)

		_, err = f.commands.Create(ctx, in)
		assert.ErrorIs(t, err, commands.ErrDuplicateBlackout)
	})
}

func TestBlackoutCommands_BulkCreate(t *testing.T) {
	ctx := context.Background()

	bulkInput := func(dates ...string) commands.BulkCreateBlackoutInput {
		return commands.BulkCreateBlackoutInput{
			Studio:    booking.StudioA.String(),
			Dates:     dates,
			Start:     "10:00",
			End:       "12:00",
			CreatedBy: "staff-1",
		}
	}

	t.Run("no dates", func(t *testing.T) {
		f := newBlackoutFixture()
		_, err := f.commands.BulkCreate(ctx, bulkInput())
		assert.ErrorIs(t, err, commands.ErrMissingFields)
	})

	t.Run("past dates are silently dropped", func(t *testing.T) {
		f := newBlackoutFixture()

		result, err := f.commands.BulkCreate(ctx, bulkInput("2026-08-30", "2026-09-05"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Created)
		assert.Equal(t, []string{"2026-09-05"}, result.SurvivingDates)
	})

	t.Run("all dates in the past", func(t *testing.T) {
		f := newBlackoutFixture()

		_, err := f.commands.BulkCreate(ctx, bulkInput("2026-08-30", "2026-08-31"))
		assert.ErrorIs(t, err, commands.ErrAllDatesInPast)
	})

	t.Run("today survives only if the start has not elapsed", func(t *testing.T) {
		// now is 10:00 local
		f := newBlackoutFixture()

		in := bulkInput("2026-09-01")
		in.Start = "11:00"
		in.End = "13:00"
		result, err := f.commands.BulkCreate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-09-01"}, result.SurvivingDates)

		in.Start = "09:00"
		in.End = "13:00"
		_, err = f.commands.BulkCreate(ctx, in)
		assert.ErrorIs(t, err, commands.ErrAllDatesInPast)
	})

	t.Run("confirmed reservations shield their dates", func(t *testing.T) {
		f := newBlackoutFixture()
		f.seedReservation(t, booking.StudioA, "2026-09-05", "11:00", "13:00", booking.StatusConfirmed)

		result, err := f.commands.BulkCreate(ctx, bulkInput("2026-09-05", "2026-09-06"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Created)
		assert.Equal(t, []string{"2026-09-06"}, result.SurvivingDates)
	})

	t.Run("pending reservations do not shield", func(t *testing.T) {
		f := newBlackoutFixture()
		f.seedReservation(t, booking.StudioA, "2026-09-05", "11:00", "13:00", booking.StatusPending)

		result, err := f.commands.BulkCreate(ctx, bulkInput("2026-09-05"))
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-09-05"}, result.SurvivingDates)
	})

	t.Run("every surviving date conflicted", func(t *testing.T) {
		f := newBlackoutFixture()
		f.seedReservation(t, booking.StudioA, "2026-09-05", "11:00", "13:00", booking.StatusConfirmed)

		_, err := f.commands.BulkCreate(ctx, bulkInput("2026-09-05"))
		assert.ErrorIs(t, err, commands.ErrAllSlotsConflicted)
	})

	t.Run("repeat request creates nothing new", func(t *testing.T) {
		f := newBlackoutFixture()

		first, err := f.commands.BulkCreate(ctx, bulkInput("2026-09-05", "2026-09-06"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), first.Created)

		second, err := f.commands.BulkCreate(ctx, bulkInput("2026-09-05", "2026-09-06"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), second.Created)
		assert.Equal(t, first.SurvivingDates, second.SurvivingDates)
	})
}

func TestBlackoutCommands_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete by id", func(t *testing.T) {
		f := newBlackoutFixture()
		slot, err := f.commands.Create(ctx, commands.CreateBlackoutInput{
			Studio: booking.StudioA.String(),
			Date:   "2026-09-10",
			Start:  "10:00",
			End:    "12:00",
		})
		require.NoError(t, err)

		deleted, err := f.commands.DeleteByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = f.commands.DeleteByID(ctx, slot.ID)
		assert.ErrorIs(t, err, commands.ErrBlackoutNotFound)
	})

	t.Run("delete range", func(t *testing.T) {
		f := newBlackoutFixture()
		_, err := f.commands.BulkCreate(ctx, commands.BulkCreateBlackoutInput{
			Studio: booking.StudioA.String(),
			Dates:  []string{"2026-09-05", "2026-09-06", "2026-09-20"},
			Start:  "10:00",
			End:    "12:00",
		})
		require.NoError(t, err)

		deleted, err := f.commands.DeleteRange(ctx, commands.DeleteBlackoutRangeInput{
			Studio: booking.StudioA.String(),
			From:   "2026-09-01",
			To:     "2026-09-10",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
	})

	t.Run("empty range", func(t *testing.T) {
		f := newBlackoutFixture()

		_, err := f.commands.DeleteRange(ctx, commands.DeleteBlackoutRangeInput{
			Studio: booking.StudioA.String(),
			From:   "2026-09-01",
			To:     "2026-09-10",
		})
		assert.ErrorIs(t, err, commands.ErrBlackoutNotFound)
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newBlackoutFixture()

		_, err := f.commands.DeleteRange(ctx, commands.DeleteBlackoutRangeInput{
			Studio: booking.StudioA.String(),
			From:   "2026-09-10",
			To:     "2026-09-01",
		})
		assert.ErrorIs(t, err, commands.ErrMissingFields)
	})
}
