package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"cureconnect-api/internal/model"
	"cureconnect-api/internal/schedule"
)

// slotActiveIndex is the partial unique index over (doctor_id, date, time)
// for non-cancelled rows. A 23505 on it means the caller lost a race for
// the slot.
const slotActiveIndex = "appointments_slot_active_idx"

func (s *Store) Insert(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO appointments (id, doctor_id, user_id, patient_name, patient_email,
		                           patient_phone, date, time, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.DoctorID, nullIfEmpty(a.UserID), a.PatientName, a.PatientEmail,
		a.PatientPhone, a.Date, a.Time, a.Status, a.Notes,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == slotActiveIndex {
		return schedule.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// BookedTimes returns the time labels held by active appointments for a
// doctor on a date, in time order.
func (s *Store) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT time FROM appointments
		 WHERE doctor_id = $1 AND date = $2 AND status <> 'cancelled'
		 ORDER BY time`, doctorID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SlotTaken(ctx context.Context, doctorID, date, timeLabel string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status <> 'cancelled'
		)`, doctorID, date, timeLabel,
	).Scan(&exists)
	return exists, err
}

const appointmentSelect = `
	SELECT a.id, a.doctor_id, a.user_id, a.patient_name, a.patient_email,
	       a.patient_phone, a.date, a.time, a.status, a.notes,
	       a.created_at, a.updated_at,
	       d.id, d.name, d.specialty, d.image,
	       u.id, u.name, u.email
	FROM appointments a
	LEFT JOIN doctors d ON d.id = a.doctor_id
	LEFT JOIN users u ON u.id = a.user_id`

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	row := s.db.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointment %s: %w", id, schedule.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AppointmentFilter narrows ListAppointments. Empty fields are skipped.
type AppointmentFilter struct {
	DoctorID string
	Date     string
	UserID   string
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	q := appointmentSelect + ` WHERE 1=1`
	var args []any

	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		q += fmt.Sprintf(` AND a.doctor_id = $%d`, len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		q += fmt.Sprintf(` AND a.date = $%d`, len(args))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		q += fmt.Sprintf(` AND a.user_id = $%d`, len(args))
	}
	q += ` ORDER BY a.date, a.time`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateStatusNotes sets status and/or notes, leaving nil fields alone.
func (s *Store) UpdateStatusNotes(ctx context.Context, id string, status, notes *string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE appointments
		 SET status = COALESCE($1, status), notes = COALESCE($2, notes), updated_at = NOW()
		 WHERE id = $3`,
		status, notes, id,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id, schedule.ErrNotFound)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	var userID *string
	var docID, docName, docSpecialty, docImage *string
	var uID, uName, uEmail *string

	err := row.Scan(&a.ID, &a.DoctorID, &userID, &a.PatientName, &a.PatientEmail,
		&a.PatientPhone, &a.Date, &a.Time, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
		&docID, &docName, &docSpecialty, &docImage,
		&uID, &uName, &uEmail)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		a.UserID = *userID
	}
	if docID != nil {
		a.Doctor = &model.DoctorSummary{ID: *docID, Name: deref(docName), Specialty: deref(docSpecialty), Image: deref(docImage)}
	}
	if uID != nil {
		a.User = &model.UserSummary{ID: *uID, Name: deref(uName), Email: deref(uEmail)}
	}
	return a, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
