package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cureconnect-api/internal/model"
)

// DoctorDirectory supplies working-hour configuration per doctor.
type DoctorDirectory interface {
	// DoctorByID returns ErrNotFound (wrapped) for an unknown id.
	DoctorByID(ctx context.Context, id string) (*model.Doctor, error)
}

// AppointmentStore is the durable record of appointments. Insert must
// reject a second active appointment for the same (doctor, date, time)
// with ErrConflict — that rejection, not the engine's pre-check, is what
// decides a race between two writers.
type AppointmentStore interface {
	BookedTimes(ctx context.Context, doctorID, date string) ([]string, error)
	SlotTaken(ctx context.Context, doctorID, date, timeLabel string) (bool, error)
	Insert(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	UpdateStatusNotes(ctx context.Context, id string, status, notes *string) error
}

// Caller is the identity attached to a request, possibly anonymous.
type Caller struct {
	UserID        string
	Authenticated bool
}

// BookingRequest carries the fields of a booking attempt. UserID is
// optional; everything past Time is descriptive only.
type BookingRequest struct {
	DoctorID     string
	UserID       string
	PatientName  string
	PatientEmail string
	PatientPhone string
	Date         string
	Time         string
	Notes        string
}

// Engine computes availability and commits bookings against a doctor's
// working hours. All collaborators are injected; the engine reads no
// ambient state.
type Engine struct {
	doctors  DoctorDirectory
	appts    AppointmentStore
	interval int
}

func NewEngine(doctors DoctorDirectory, appts AppointmentStore) *Engine {
	return &Engine{doctors: doctors, appts: appts, interval: DefaultInterval}
}

// AvailableSlots returns the free slot labels for a doctor on a date:
// the full grid minus times held by active appointments, original order
// preserved. Computed fresh per call.
func (e *Engine) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if doctorID == "" || date == "" {
		return nil, fmt.Errorf("%w: doctor id and date required", ErrInvalidInput)
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}

	doc, err := e.doctors.DoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := e.appts.BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	all := Slots(doc.StartHour, doc.EndHour, e.interval)
	free := make([]string, 0, len(all))
	for _, s := range all {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free, nil
}

// Book validates a request against the doctor's working hours and the
// existing bookings, then commits a confirmed appointment. Any HH:MM
// inside the window is bookable, not just the grid the generator offers;
// the end hour admits only its on-the-hour mark.
func (e *Engine) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	if req.DoctorID == "" || req.PatientName == "" || req.Date == "" || req.Time == "" {
		return nil, fmt.Errorf("%w: doctorId, patientName, date and time required", ErrInvalidInput)
	}
	if err := checkDate(req.Date); err != nil {
		return nil, err
	}

	doc, err := e.doctors.DoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	hour, minute, err := parseClock(req.Time)
	if err != nil {
		return nil, err
	}
	if hour < doc.StartHour || hour > doc.EndHour || (hour == doc.EndHour && minute > 0) {
		return nil, fmt.Errorf("%w: %s not within %02d:00-%02d:00", ErrOutOfRange, req.Time, doc.StartHour, doc.EndHour)
	}

	// canonical label so "17" and "9:30" persist as "17:00" and "09:30"
	timeLabel := fmt.Sprintf("%02d:%02d", hour, minute)

	// Fast path for a friendly error; the store's unique index is the
	// authority when two requests race for the same slot.
	taken, err := e.appts.SlotTaken(ctx, req.DoctorID, req.Date, timeLabel)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}
	if taken {
		return nil, ErrConflict
	}

	a := &model.Appointment{
		ID:           uuid.New().String(),
		DoctorID:     req.DoctorID,
		UserID:       req.UserID,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		Date:         req.Date,
		Time:         timeLabel,
		Status:       model.StatusConfirmed,
		Notes:        req.Notes,
	}
	if err := e.appts.Insert(ctx, a); err != nil {
		return nil, err
	}

	a.Doctor = &model.DoctorSummary{ID: doc.ID, Name: doc.Name, Specialty: doc.Specialty, Image: doc.Image}
	return a, nil
}

// AppointmentForCaller loads an appointment, enforcing the ownership
// gate used by reads and exports.
func (e *Engine) AppointmentForCaller(ctx context.Context, id string, caller Caller) (*model.Appointment, error) {
	a, err := e.appts.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(a, caller) {
		return nil, ErrForbidden
	}
	return a, nil
}

// Update changes status and/or notes. Appointments with an owner may
// only be touched by that owner; ownerless (anonymous) appointments are
// mutable by any caller.
func (e *Engine) Update(ctx context.Context, id string, caller Caller, status, notes *string) (*model.Appointment, error) {
	a, err := e.appts.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(a, caller) {
		return nil, ErrForbidden
	}
	if status != nil && !model.ValidStatus(*status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
	}
	if err := e.appts.UpdateStatusNotes(ctx, id, status, notes); err != nil {
		return nil, err
	}
	return e.appts.AppointmentByID(ctx, id)
}

// Cancel transitions an appointment to cancelled. History is retained
// and the slot becomes bookable again.
func (e *Engine) Cancel(ctx context.Context, id string, caller Caller) (*model.Appointment, error) {
	cancelled := model.StatusCancelled
	return e.Update(ctx, id, caller, &cancelled, nil)
}

func canMutate(a *model.Appointment, caller Caller) bool {
	if a.UserID == "" {
		return true
	}
	return caller.Authenticated && caller.UserID == a.UserID
}

func checkDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// parseClock splits an HH:MM label into its components. A bare hour
// ("09") reads as minute zero.
func parseClock(label string) (hour, minute int, err error) {
	parts := strings.SplitN(label, ":", 2)
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, label)
	}
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, label)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, label)
	}
	return hour, minute, nil
}
