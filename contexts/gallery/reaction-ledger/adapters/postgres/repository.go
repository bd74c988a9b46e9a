package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	domainerrors "galleria/contexts/gallery/reaction-ledger/domain/errors"
	"galleria/contexts/gallery/reaction-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements the item and vote stores on postgres. The uniqueness
// invariant lives in the composite primary key of item_votes; CastVote is a
// single INSERT ... ON CONFLICT DO NOTHING whose RowsAffected separates
// created from already_existed without a follow-up read.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the reference schema: items keyed by item_id with a unique
// external_ref, votes keyed by (item_id, voter_id) cascading on item delete.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&itemModel{}, &voteModel{})
}

func (r *Repository) RecordItem(ctx context.Context, item entities.Item) error {
	row := itemModelFromEntity(item)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"external_ref":   row.ExternalRef,
			"owner_id":       row.OwnerID,
			"prompt":         row.Prompt,
			"media_location": row.MediaLocation,
			"updated_at":     row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrExternalRefConflict
		}
		return r.storeFailure("ledger_repo_record_item_failed", err,
			"item_id", row.ItemID,
			"external_ref", row.ExternalRef,
		)
	}
	return nil
}

func (r *Repository) FindItemByExternalRef(ctx context.Context, externalRef string) (string, bool, error) {
	var row itemModel
	err := r.db.WithContext(ctx).
		Select("item_id").
		Where("external_ref = ?", strings.TrimSpace(externalRef)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, r.storeFailure("ledger_repo_find_item_failed", err,
			"external_ref", strings.TrimSpace(externalRef),
		)
	}
	return row.ItemID, true, nil
}

func (r *Repository) GetItem(ctx context.Context, itemID string) (entities.Item, error) {
	var row itemModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", strings.TrimSpace(itemID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Item{}, domainerrors.ErrItemNotFound
		}
		return entities.Item{}, r.storeFailure("ledger_repo_get_item_failed", err,
			"item_id", strings.TrimSpace(itemID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) CastVote(ctx context.Context, vote entities.Vote) (entities.CastOutcome, error) {
	row := voteModelFromEntity(vote)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "voter_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return "", r.storeFailure("ledger_repo_cast_vote_failed", result.Error,
			"item_id", row.ItemID,
			"voter_id", row.VoterID,
		)
	}
	if result.RowsAffected == 0 {
		return entities.OutcomeAlreadyExisted, nil
	}
	return entities.OutcomeCreated, nil
}

func (r *Repository) RetractVote(ctx context.Context, itemID string, voterID string) error {
	err := r.db.WithContext(ctx).
		Where("item_id = ?", strings.TrimSpace(itemID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Delete(&voteModel{}).
		Error
	if err != nil {
		return r.storeFailure("ledger_repo_retract_vote_failed", err,
			"item_id", strings.TrimSpace(itemID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return nil
}

func (r *Repository) CountVotes(ctx context.Context, itemID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("item_id = ?", strings.TrimSpace(itemID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.storeFailure("ledger_repo_count_votes_failed", err,
			"item_id", strings.TrimSpace(itemID),
		)
	}
	return int(count), nil
}

// storeFailure logs and wraps driver errors so callers can classify them as
// transient store unavailability distinct from domain outcomes.
func (r *Repository) storeFailure(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "gallery/reaction-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("reaction ledger repository operation failed", fields...)
	return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ItemStore = (*Repository)(nil)
var _ ports.VoteStore = (*Repository)(nil)
