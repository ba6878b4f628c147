package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concordhq/concord/internal/services/governance/domain/proposal"
	"github.com/concordhq/concord/internal/services/governance/storage"
)

const proposalColumns = `id, workspace_id, entity_type, entity_id, circle_id,
	title, description, status, created_by_person_id, meeting_id,
	submitted_at, processed_at, processed_by_person_id,
	version_history_entry_id, created_at, updated_at`

// PutProposal inserts or replaces a proposal record.
func (s *Store) PutProposal(ctx context.Context, p storage.ProposalRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("proposal id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO proposals (`+proposalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			meeting_id = excluded.meeting_id,
			submitted_at = excluded.submitted_at,
			processed_at = excluded.processed_at,
			processed_by_person_id = excluded.processed_by_person_id,
			version_history_entry_id = excluded.version_history_entry_id,
			updated_at = excluded.updated_at`,
		p.ID, p.WorkspaceID, string(p.EntityType), p.EntityID, p.CircleID,
		p.Title, p.Description, string(p.Status), p.CreatedByPersonID, p.MeetingID,
		toNullMillis(p.SubmittedAt), toNullMillis(p.ProcessedAt), p.ProcessedByPersonID,
		p.VersionHistoryEntryID, toMillis(p.CreatedAt), toMillis(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("put proposal: %w", err)
	}
	return nil
}

// GetProposal retrieves a proposal by ID.
func (s *Store) GetProposal(ctx context.Context, id string) (storage.ProposalRecord, error) {
	if err := s.ready(); err != nil {
		return storage.ProposalRecord{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE id = ?`, id)
	p, err := scanProposal(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ProposalRecord{}, storage.ErrNotFound
		}
		return storage.ProposalRecord{}, fmt.Errorf("get proposal: %w", err)
	}
	return p, nil
}

// ListProposalsByWorkspace returns proposals ordered by creation time.
func (s *Store) ListProposalsByWorkspace(ctx context.Context, workspaceID string) ([]storage.ProposalRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+proposalColumns+` FROM proposals
		WHERE workspace_id = ?
		ORDER BY created_at, id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	return collectProposals(rows)
}

// ListProposalsByMeeting returns proposals bound to a meeting.
func (s *Store) ListProposalsByMeeting(ctx context.Context, meetingID string) ([]storage.ProposalRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+proposalColumns+` FROM proposals
		WHERE meeting_id = ?
		ORDER BY created_at, id`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list proposals by meeting: %w", err)
	}
	defer rows.Close()

	return collectProposals(rows)
}

// PutEvolution inserts or replaces an evolution record.
func (s *Store) PutEvolution(ctx context.Context, e storage.EvolutionRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("evolution id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO proposal_evolutions
			(id, proposal_id, field_path, field_label, before_value, after_value,
			 change_type, ord, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			field_path = excluded.field_path,
			field_label = excluded.field_label,
			before_value = excluded.before_value,
			after_value = excluded.after_value,
			change_type = excluded.change_type,
			ord = excluded.ord`,
		e.ID, e.ProposalID, e.FieldPath, e.FieldLabel, e.BeforeValue, e.AfterValue,
		string(e.ChangeType), e.Order, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("put evolution: %w", err)
	}
	return nil
}

// GetEvolution retrieves an evolution by ID.
func (s *Store) GetEvolution(ctx context.Context, id string) (storage.EvolutionRecord, error) {
	if err := s.ready(); err != nil {
		return storage.EvolutionRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, proposal_id, field_path, field_label, before_value, after_value,
			change_type, ord, created_at
		FROM proposal_evolutions WHERE id = ?`, id)
	e, err := scanEvolution(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.EvolutionRecord{}, storage.ErrNotFound
		}
		return storage.EvolutionRecord{}, fmt.Errorf("get evolution: %w", err)
	}
	return e, nil
}

// DeleteEvolution removes an evolution from a draft proposal.
func (s *Store) DeleteEvolution(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM proposal_evolutions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete evolution: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete evolution result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListEvolutionsByProposal returns evolutions ordered by Order ascending.
func (s *Store) ListEvolutionsByProposal(ctx context.Context, proposalID string) ([]storage.EvolutionRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, proposal_id, field_path, field_label, before_value, after_value,
			change_type, ord, created_at
		FROM proposal_evolutions
		WHERE proposal_id = ?
		ORDER BY ord, id`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("list evolutions: %w", err)
	}
	defer rows.Close()

	var evolutions []storage.EvolutionRecord
	for rows.Next() {
		e, err := scanEvolution(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan evolution: %w", err)
		}
		evolutions = append(evolutions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read evolutions: %w", err)
	}
	return evolutions, nil
}

func collectProposals(rows *sql.Rows) ([]storage.ProposalRecord, error) {
	var proposals []storage.ProposalRecord
	for rows.Next() {
		p, err := scanProposal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read proposals: %w", err)
	}
	return proposals, nil
}

func scanProposal(scan func(...any) error) (storage.ProposalRecord, error) {
	var p storage.ProposalRecord
	var entityType, status string
	var submittedAt, processedAt sql.NullInt64
	var createdAt, updatedAt int64

	err := scan(&p.ID, &p.WorkspaceID, &entityType, &p.EntityID, &p.CircleID,
		&p.Title, &p.Description, &status, &p.CreatedByPersonID, &p.MeetingID,
		&submittedAt, &processedAt, &p.ProcessedByPersonID,
		&p.VersionHistoryEntryID, &createdAt, &updatedAt)
	if err != nil {
		return storage.ProposalRecord{}, err
	}

	p.EntityType = proposal.EntityType(entityType)
	p.Status = proposal.Status(status)
	p.SubmittedAt = fromNullMillis(submittedAt)
	p.ProcessedAt = fromNullMillis(processedAt)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func scanEvolution(scan func(...any) error) (storage.EvolutionRecord, error) {
	var e storage.EvolutionRecord
	var changeType string
	var createdAt int64

	err := scan(&e.ID, &e.ProposalID, &e.FieldPath, &e.FieldLabel,
		&e.BeforeValue, &e.AfterValue, &changeType, &e.Order, &createdAt)
	if err != nil {
		return storage.EvolutionRecord{}, err
	}

	e.ChangeType = proposal.ChangeType(changeType)
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}
