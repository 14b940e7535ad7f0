package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for unique index conflicts.
const uniqueViolation = "23505"

// ActiveAssignmentIndexSQL returns the partial unique index enforcing one
// active assignment per order and fulfiller pair. Applied during
// migration, alongside AutoMigrate.
func ActiveAssignmentIndexSQL() string {
	return fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_active_unique
		ON assignments (order_id, fulfiller_id)
		WHERE status NOT IN (%d, %d)
	`, int(assignment.StatusCancelled), int(assignment.StatusRejected))
}

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment. A second active assignment for the same
// order and fulfiller trips the partial unique index and surfaces as
// order.ErrSlotUnavailable.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: fulfiller already holds a slot on this order", order.ErrSlotUnavailable)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing assignment to the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves the active assignment held by the fulfiller on the order.
func (r *GormAssignmentRepository) GetActive(
	ctx context.Context,
	orderID, fulfillerID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := errors.Join(orderID.Validate(), fulfillerID.Validate()); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND fulfiller_id = ? AND status NOT IN ?",
			orderID.Bytes(), fulfillerID.Bytes(),
			[]int{int(assignment.StatusCancelled), int(assignment.StatusRejected)}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", fulfillerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every assignment recorded for the order.
func (r *GormAssignmentRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	legs := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		leg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	return legs, nil
}
