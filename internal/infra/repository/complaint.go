package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/infra"
	"dorm-services/internal/pkg/pgconv"
	"dorm-services/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const complaintColumns = `id, student_id, student_name, room, category, urgency, title,
	description, status, created_at, updated_at`

const (
	insertComplaint = `
INSERT INTO complaints (id, student_id, student_name, room, category, urgency, title,
	description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	findComplaintByID = `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	updateComplaintStatus = `
UPDATE complaints SET status = $2, updated_at = $3
WHERE id = $1
RETURNING ` + complaintColumns

	deleteComplaint = `DELETE FROM complaints WHERE id = $1`
)

type ComplaintRepository struct {
	db DBTX
}

func NewComplaintRepository(db DBTX) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Insert(ctx context.Context, c *complaint.Complaint) (*complaint.Complaint, error) {
	if c.ID() == uuid.Nil {
		c = c.WithID(uuid.New())
	}

	_, err := r.db.Exec(ctx, insertComplaint,
		c.ID(),
		c.StudentID(),
		c.StudentName(),
		c.Room(),
		c.Category(),
		c.Urgency().String(),
		c.Title(),
		c.Description(),
		c.Status().String(),
		pgconv.TimeToPgtype(c.CreatedAt()),
		pgconv.TimeToPgtype(c.UpdatedAt()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert complaint", err)
	}
	return c, nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRow(ctx, findComplaintByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("complaint not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find complaint by ID", err)
	}
	return c, nil
}

// List filters on the canonical spellings written by Insert and UpdateStatus.
func (r *ComplaintRepository) List(ctx context.Context, filter shared.ComplaintFilter) ([]*complaint.Complaint, error) {
	var (
		where []string
		args  []any
	)
	if filter.Urgency != nil {
		args = append(args, filter.Urgency.String())
		where = append(where, "urgency = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}

	sql := `SELECT ` + complaintColumns + ` FROM complaints`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY created_at DESC, seq DESC`

	return r.query(ctx, "failed to list complaints", sql, args...)
}

func (r *ComplaintRepository) ListByStudent(ctx context.Context, studentID string) ([]*complaint.Complaint, error) {
	sql := `SELECT ` + complaintColumns + ` FROM complaints WHERE student_id = $1 ORDER BY created_at DESC, seq DESC`
	return r.query(ctx, "failed to list complaints by student", sql, studentID)
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status complaint.Status, at time.Time) (*complaint.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRow(ctx, updateComplaintStatus, id, status.String(), pgconv.TimeToPgtype(at)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("complaint not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update complaint status", err)
	}
	return c, nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteComplaint, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete complaint", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("complaint not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ComplaintRepository) query(ctx context.Context, failMsg, sql string, args ...any) ([]*complaint.Complaint, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	defer rows.Close()

	var out []*complaint.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(failMsg, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return out, nil
}

func scanComplaint(row rowScanner) (*complaint.Complaint, error) {
	var (
		id                          uuid.UUID
		studentID, studentName      string
		room, category, title, desc string
		rawUrgency, rawStatus       string
		createdAt, updatedAt        pgtype.Timestamptz
	)
	if err := row.Scan(&id, &studentID, &studentName, &room, &category, &rawUrgency, &title,
		&desc, &rawStatus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	urgency, err := complaint.ParseUrgency(rawUrgency)
	if err != nil {
		return nil, err
	}
	status, err := complaint.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return complaint.ReconstructComplaint(
		id, studentID, studentName, room, category, urgency, title, desc, status,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
