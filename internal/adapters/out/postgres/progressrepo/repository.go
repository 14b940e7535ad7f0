package progressrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/progress"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgressRepository implements ProgressRepository using GORM.
type GormProgressRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProgressRepository creates a new GORM progress repository.
func NewGormProgressRepository(db *gorm.DB, tracker aggregateTracker) *GormProgressRepository {
	return &GormProgressRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert inserts the record on the first report and overwrites the stored
// status and timestamp afterwards.
func (r *GormProgressRepository) Upsert(ctx context.Context, record *progress.Progress) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "fulfiller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// Get retrieves the progress record for the order and fulfiller pair.
func (r *GormProgressRepository) Get(
	ctx context.Context,
	orderID, fulfillerID kernel.UUID,
) (*progress.Progress, error) {
	if err := errors.Join(orderID.Validate(), fulfillerID.Validate()); err != nil {
		return nil, err
	}

	var dto ProgressDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND fulfiller_id = ?", orderID.Bytes(), fulfillerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("progress", fulfillerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
