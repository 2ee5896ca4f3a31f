package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cureconnect-api/internal/model"
	"cureconnect-api/internal/schedule"
)

const doctorCols = `id, name, specialty, price, image, start_hour, end_hour,
	experience, education, description, rating, reviews, created_at, updated_at`

func (s *Store) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO doctors (id, name, specialty, price, image, start_hour, end_hour,
		                      experience, education, description, rating, reviews)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		d.ID, d.Name, d.Specialty, d.Price, d.Image, d.StartHour, d.EndHour,
		d.Experience, d.Education, d.Description, d.Rating, d.Reviews,
	)
	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := s.db.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Specialty, &d.Price, &d.Image, &d.StartHour, &d.EndHour,
		&d.Experience, &d.Education, &d.Description, &d.Rating, &d.Reviews,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("doctor %s: %w", id, schedule.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDoctors filters by specialty and a free-text search over name and
// specialty, both case-insensitive substring matches, newest first.
func (s *Store) ListDoctors(ctx context.Context, specialty, search string) ([]model.Doctor, error) {
	q := `SELECT ` + doctorCols + ` FROM doctors WHERE 1=1`
	var args []any

	if specialty != "" {
		args = append(args, "%"+specialty+"%")
		q += fmt.Sprintf(` AND specialty ILIKE $%d`, len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(` AND (name ILIKE $%d OR specialty ILIKE $%d)`, len(args), len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Price, &d.Image,
			&d.StartHour, &d.EndHour, &d.Experience, &d.Education, &d.Description,
			&d.Rating, &d.Reviews, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE doctors
		 SET name=$1, specialty=$2, price=$3, image=$4, start_hour=$5, end_hour=$6,
		     experience=$7, education=$8, description=$9, rating=$10, reviews=$11,
		     updated_at=NOW()
		 WHERE id=$12`,
		d.Name, d.Specialty, d.Price, d.Image, d.StartHour, d.EndHour,
		d.Experience, d.Education, d.Description, d.Rating, d.Reviews, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s: %w", d.ID, schedule.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s: %w", id, schedule.ErrNotFound)
	}
	return nil
}

// ReplaceDoctors wipes the directory and inserts the given set in one
// transaction. Used by the seed endpoint.
func (s *Store) ReplaceDoctors(ctx context.Context, doctors []model.Doctor) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM doctors`); err != nil {
		return err
	}
	for _, d := range doctors {
		_, err = tx.Exec(ctx,
			`INSERT INTO doctors (id, name, specialty, price, image, start_hour, end_hour,
			                      experience, education, description, rating, reviews)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			d.ID, d.Name, d.Specialty, d.Price, d.Image, d.StartHour, d.EndHour,
			d.Experience, d.Education, d.Description, d.Rating, d.Reviews,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
