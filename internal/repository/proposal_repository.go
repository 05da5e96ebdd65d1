package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/fyp-coordination-api/internal/models"
)

const proposalColumns = `id, group_id, project_title, fyp_status, supervisor_id, co_advisor_id, member_roll_numbers, submitted_at, updated_at`

// ProposalRepository reads the group/proposal directory. The coordination
// core never writes proposals.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository creates a new proposal repository.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// FindApprovedByGroup resolves the approved, supervised proposal for a group.
// Returns sql.ErrNoRows when the group has no eligible proposal.
func (r *ProposalRepository) FindApprovedByGroup(ctx context.Context, groupID string) (*models.Proposal, error) {
	query := fmt.Sprintf(`SELECT %s FROM proposals WHERE group_id = $1 AND fyp_status = $2 AND supervisor_id IS NOT NULL`, proposalColumns)
	var proposal models.Proposal
	if err := r.db.GetContext(ctx, &proposal, query, groupID, models.ProposalStatusApproved); err != nil {
		return nil, err
	}
	return &proposal, nil
}

// ListApproved returns every approved, supervised proposal.
func (r *ProposalRepository) ListApproved(ctx context.Context) ([]models.Proposal, error) {
	query := fmt.Sprintf(`SELECT %s FROM proposals WHERE fyp_status = $1 AND supervisor_id IS NOT NULL ORDER BY group_id ASC`, proposalColumns)
	var proposals []models.Proposal
	if err := r.db.SelectContext(ctx, &proposals, query, models.ProposalStatusApproved); err != nil {
		return nil, fmt.Errorf("list approved proposals: %w", err)
	}
	return proposals, nil
}

// ListApprovedBySupervisor returns the approved proposals assigned to a
// supervisor.
func (r *ProposalRepository) ListApprovedBySupervisor(ctx context.Context, supervisorID string) ([]models.Proposal, error) {
	query := fmt.Sprintf(`SELECT %s FROM proposals WHERE fyp_status = $1 AND supervisor_id = $2 ORDER BY group_id ASC`, proposalColumns)
	var proposals []models.Proposal
	if err := r.db.SelectContext(ctx, &proposals, query, models.ProposalStatusApproved, supervisorID); err != nil {
		return nil, fmt.Errorf("list proposals by supervisor: %w", err)
	}
	return proposals, nil
}
