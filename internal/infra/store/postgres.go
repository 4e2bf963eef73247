package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

// PostgresApprovalStore is the multi-instance alternative to the file
// snapshot: same repository contract, backed by an approvals table
// with the lead snapshot in a jsonb column.
type PostgresApprovalStore struct {
	DB *sql.DB
}

func NewPostgresApprovalStore(db *sql.DB) *PostgresApprovalStore {
	return &PostgresApprovalStore{DB: db}
}

func (r *PostgresApprovalStore) Save(ctx context.Context, approval *entity.Approval) error {
	leadData, err := json.Marshal(approval.LeadData)
	if err != nil {
		return fmt.Errorf("failed to encode lead snapshot: %w", err)
	}

	var external []byte
	if approval.ExternalResult != nil {
		external, err = json.Marshal(approval.ExternalResult)
		if err != nil {
			return fmt.Errorf("failed to encode external result: %w", err)
		}
	}

	query := `
		INSERT INTO approvals (id, lead_data, status, created_at, decided_by, decided_by_name, decided_at, external_result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			status = EXCLUDED.status,
			decided_by = EXCLUDED.decided_by,
			decided_by_name = EXCLUDED.decided_by_name,
			decided_at = EXCLUDED.decided_at,
			external_result = EXCLUDED.external_result
	`

	_, err = r.DB.ExecContext(ctx, query,
		approval.ID,
		leadData,
		approval.Status,
		approval.CreatedAt,
		nullString(approval.DecidedBy),
		nullString(approval.DecidedByName),
		approval.DecidedAt,
		external,
	)
	return err
}

func (r *PostgresApprovalStore) FindByID(ctx context.Context, id string) (*entity.Approval, error) {
	query := `
		SELECT id, lead_data, status, created_at, decided_by, decided_by_name, decided_at, external_result
		FROM approvals
		WHERE id = $1
	`
	approval, err := scanApproval(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrApprovalNotFound
	}
	return approval, err
}

func (r *PostgresApprovalStore) FindAll(ctx context.Context) ([]*entity.Approval, error) {
	query := `
		SELECT id, lead_data, status, created_at, decided_by, decided_by_name, decided_at, external_result
		FROM approvals
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Approval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, approval)
	}
	return out, rows.Err()
}

func (r *PostgresApprovalStore) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM approvals WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApproval(row rowScanner) (*entity.Approval, error) {
	var (
		a             entity.Approval
		leadData      []byte
		external      []byte
		decidedBy     sql.NullString
		decidedByName sql.NullString
		decidedAt     sql.NullTime
	)

	err := row.Scan(&a.ID, &leadData, &a.Status, &a.CreatedAt, &decidedBy, &decidedByName, &decidedAt, &external)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(leadData, &a.LeadData); err != nil {
		return nil, fmt.Errorf("corrupt lead snapshot for approval %s: %w", a.ID, err)
	}
	if len(external) > 0 {
		a.ExternalResult = &entity.ExternalResult{}
		if err := json.Unmarshal(external, a.ExternalResult); err != nil {
			return nil, fmt.Errorf("corrupt external result for approval %s: %w", a.ID, err)
		}
	}
	a.DecidedBy = decidedBy.String
	a.DecidedByName = decidedByName.String
	if decidedAt.Valid {
		t := decidedAt.Time
		a.DecidedAt = &t
	}
	return &a, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EnsureSchema creates the approvals table when it is missing, so a
// fresh database works without a migration step.
func (r *PostgresApprovalStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS approvals (
			id TEXT PRIMARY KEY,
			lead_data JSONB NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			decided_by TEXT,
			decided_by_name TEXT,
			decided_at TIMESTAMPTZ,
			external_result JSONB
		)
	`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.DB.ExecContext(ctx, query)
	return err
}
