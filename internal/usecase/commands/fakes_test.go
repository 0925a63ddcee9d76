//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the persistence layer. The mutex
// mirrors the serialization the advisory locks provide in production: at most
// one unit of work runs at a time.
type memStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]booking.Reservation
	blackouts    map[uuid.UUID]blackout.Slot
	reminders    []booking.Reminder

	insertErr error
}

func newMemStore() *memStore {
	return &memStore{
		reservations: make(map[uuid.UUID]booking.Reservation),
		blackouts:    make(map[uuid.UUID]blackout.Slot),
	}
}

func (s *memStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func (s *memStore) remindersFor(id uuid.UUID) []booking.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Reminder
	for _, r := range s.reminders {
		if r.ReservationID == id {
			out = append(out, r)
		}
	}
	return out
}

type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	// Snapshot for rollback on error
	resBackup := make(map[uuid.UUID]booking.Reservation, len(u.store.reservations))
	for k, v := range u.store.reservations {
		resBackup[k] = v
	}
	boBackup := make(map[uuid.UUID]blackout.Slot, len(u.store.blackouts))
	for k, v := range u.store.blackouts {
		boBackup[k] = v
	}
	remBackup := make([]booking.Reminder, len(u.store.reminders))
	copy(remBackup, u.store.reminders)

	if err := fn(ctx, &memTx{store: u.store}); err != nil {
		u.store.reservations = resBackup
		u.store.blackouts = boBackup
		u.store.reminders = remBackup
		return err
	}
	return nil
}

type memTx struct {
	store      *memStore
	lockedKeys []shared.ScheduleKey
}

func (t *memTx) LockSchedules(_ context.Context, keys ...shared.ScheduleKey) error {
	t.lockedKeys = append(t.lockedKeys, keys...)
	return nil
}

func (t *memTx) Reservations() shared.ReservationRepository { return &memReservationRepo{t.store} }
func (t *memTx) Blackouts() shared.BlackoutRepository       { return &memBlackoutRepo{t.store} }
func (t *memTx) Reminders() shared.ReminderRepository       { return &memReminderRepo{t.store} }

type memReservationRepo struct {
	store *memStore
}

func (r *memReservationRepo) Insert(_ context.Context, res *booking.Reservation) error {
	if r.store.insertErr != nil {
		return r.store.insertErr
	}
	r.store.reservations[res.ID()] = *res
	return nil
}

func (r *memReservationRepo) Update(_ context.Context, res *booking.Reservation) error {
	if _, ok := r.store.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	r.store.reservations[res.ID()] = *res
	return nil
}

func (r *memReservationRepo) Get(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	cp := res
	return &cp, nil
}

func (r *memReservationRepo) FindOverlapping(_ context.Context, studio booking.Studio, date time.Time, startMin, endMin int, exclude uuid.UUID) ([]shared.ReservationSnapshot, error) {
	var out []shared.ReservationSnapshot
	for id, res := range r.store.reservations {
		if id == exclude || res.Studio() != studio || !sameDate(res.Date(), date) {
			continue
		}
		if !res.Status().Occupies() {
			continue
		}
		if booking.Overlaps(res.StartMin(), res.EndMin(), startMin, endMin) {
			out = append(out, shared.ReservationSnapshot{
				ID:       id,
				Studio:   res.Studio(),
				Date:     res.Date(),
				StartMin: res.StartMin(),
				EndMin:   res.EndMin(),
				Status:   res.Status(),
				Phone:    res.Phone().String(),
			})
		}
	}
	return out, nil
}

func (r *memReservationRepo) DatesWithConfirmedOverlap(_ context.Context, studio booking.Studio, dates []time.Time, startMin, endMin int) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, date := range dates {
		for _, res := range r.store.reservations {
			if res.Studio() != studio || !sameDate(res.Date(), date) {
				continue
			}
			if res.Status() != booking.StatusConfirmed {
				continue
			}
			if booking.Overlaps(res.StartMin(), res.EndMin(), startMin, endMin) {
				out[date.Format(booking.DateLayout)] = struct{}{}
				break
			}
		}
	}
	return out, nil
}

type memBlackoutRepo struct {
	store *memStore
}

func (r *memBlackoutRepo) Insert(_ context.Context, slot *blackout.Slot) error {
	for _, existing := range r.store.blackouts {
		if existing.Studio == slot.Studio && sameDate(existing.Date, slot.Date) &&
			existing.StartMin == slot.StartMin && existing.EndMin == slot.EndMin {
			return infra.WrapRepoErr("duplicate blackout", errors.New("unique violation"), infra.KindDuplicateKey)
		}
	}
	r.store.blackouts[slot.ID] = *slot
	return nil
}

func (r *memBlackoutRepo) UpsertMany(_ context.Context, studio booking.Studio, dates []time.Time, startMin, endMin int, createdBy string) (int64, error) {
	var created int64
	for _, date := range dates {
		exists := false
		for _, existing := range r.store.blackouts {
			if existing.Studio == studio && sameDate(existing.Date, date) &&
				existing.StartMin == startMin && existing.EndMin == endMin {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		id := uuid.New()
		r.store.blackouts[id] = blackout.Slot{
			ID:        id,
			Studio:    studio,
			Date:      date,
			StartMin:  startMin,
			EndMin:    endMin,
			CreatedBy: createdBy,
			CreatedAt: time.Now(),
		}
		created++
	}
	return created, nil
}

func (r *memBlackoutRepo) HasOverlapping(_ context.Context, studio booking.Studio, date time.Time, startMin, endMin int) (bool, error) {
	for _, slot := range r.store.blackouts {
		if slot.Studio != studio || !sameDate(slot.Date, date) {
			continue
		}
		if booking.Overlaps(slot.StartMin, slot.EndMin, startMin, endMin) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBlackoutRepo) DeleteByID(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.store.blackouts[id]; !ok {
		return 0, nil
	}
	delete(r.store.blackouts, id)
	return 1, nil
}

func (r *memBlackoutRepo) DeleteRange(_ context.Context, studio booking.Studio, from, to time.Time) (int64, error) {
	var deleted int64
	for id, slot := range r.store.blackouts {
		if slot.Studio != studio {
			continue
		}
		if slot.Date.Before(from) || slot.Date.After(to) {
			continue
		}
		delete(r.store.blackouts, id)
		deleted++
	}
	return deleted, nil
}

type memReminderRepo struct {
	store *memStore
}

func (r *memReminderRepo) InsertBatch(_ context.Context, reminders []booking.Reminder) error {
	r.store.reminders = append(r.store.reminders, reminders...)
	return nil
}

func (r *memReminderRepo) CancelPending(_ context.Context, reservationID uuid.UUID) error {
	for i, rem := range r.store.reminders {
		if rem.ReservationID == reservationID && rem.Status == booking.ReminderPending {
			r.store.reminders[i].Status = booking.ReminderCancelled
		}
	}
	return nil
}

func blackoutSlot(id uuid.UUID, studio booking.Studio, date time.Time, startMin, endMin int) blackout.Slot {
	return blackout.Slot{
		ID:        id,
		Studio:    studio,
		Date:      date,
		StartMin:  startMin,
		EndMin:    endMin,
		CreatedBy: "staff-1",
		CreatedAt: time.Now(),
	}
}

func sameDate(a, b time.Time) bool {
	return a.Format(booking.DateLayout) == b.Format(booking.DateLayout)
}

type fakeSettings struct {
	settings shared.Settings
	err      error
}

func (f *fakeSettings) Current(_ context.Context) (shared.Settings, error) {
	return f.settings, f.err
}

// chanPublisher delivers events over a channel so tests can wait for the
// async post-commit publish.
type chanPublisher struct {
	events chan commands.ReservationEvent
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan commands.ReservationEvent, 16)}
}

func (p *chanPublisher) Publish(_ context.Context, event commands.ReservationEvent) error {
	p.events <- event
	return nil
}

func (p *chanPublisher) waitForEvent(timeout time.Duration) (commands.ReservationEvent, bool) {
	select {
	case e := <-p.events:
		return e, true
	case <-time.After(timeout):
		return commands.ReservationEvent{}, false
	}
}
