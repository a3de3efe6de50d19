package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
	"devclub.community/models"
)

// RSVPListOptions narrows per-user RSVP listings.
type RSVPListOptions struct {
	Status       string
	UpcomingOnly bool
	Now          time.Time
}

// IRSVPRepository covers reservation persistence.
type IRSVPRepository interface {
	Create(ctx context.Context, rsvp *models.RSVP) error
	FindByID(ctx context.Context, id uint) (*models.RSVP, error)
	ExistsForEventAndEmail(ctx context.Context, eventID uint, email string) (bool, error)
	CountActiveForEvent(ctx context.Context, eventID uint) (int64, error)
	ListByUserEmail(ctx context.Context, email string, opts RSVPListOptions) ([]models.RSVP, error)
	ListByEventID(ctx context.Context, eventID uint, status string) ([]models.RSVP, error)
	CountByStatusForEvent(ctx context.Context, eventID uint) (map[models.RSVPStatus]int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.RSVPStatus) error
}

// RSVPRepository implements IRSVPRepository on GORM.
type RSVPRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewRSVPRepository builds a repository on the shared connection.
func NewRSVPRepository() IRSVPRepository {
	return &RSVPRepository{db: configs.GetDB()}
}

// NewRSVPRepositoryTx builds a repository bound to an existing transaction.
func NewRSVPRepositoryTx(tx *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: tx, inTx: true}
}

// NewRSVPRepositoryDB builds a repository on an explicit handle.
func NewRSVPRepositoryDB(db *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: db}
}

func (r *RSVPRepository) getDB(ctx context.Context) *gorm.DB {
	if r.inTx {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// Create inserts a reservation. A compound-unique-index hit surfaces as
// ErrDuplicate so the admission policy can report it as a duplicate RSVP
// even when the prior existence check raced with another request.
func (r *RSVPRepository) Create(ctx context.Context, rsvp *models.RSVP) error {
	if rsvp == nil || rsvp.EventID == 0 {
		return errors.New("rsvp requires an event id")
	}
	if err := r.getDB(ctx).Create(rsvp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		configslog.Log.Error("rsvp create failed", zap.Uint("eventID", rsvp.EventID), zap.Error(err))
		return err
	}
	return nil
}

// FindByID returns one reservation by primary key.
func (r *RSVPRepository) FindByID(ctx context.Context, id uint) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.getDB(ctx).First(&rsvp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("rsvp FindByID failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

// ExistsForEventAndEmail reports whether any RSVP exists for the pair,
// regardless of status. Email must already be normalized.
func (r *RSVPRepository) ExistsForEventAndEmail(ctx context.Context, eventID uint, email string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.RSVP{}).
		Where("event_id = ? AND user_email = ?", eventID, email).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("rsvp existence check failed", zap.Uint("eventID", eventID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// CountActiveForEvent counts reservations holding a slot: pending and
// confirmed. Cancelled RSVPs free their slot.
func (r *RSVPRepository) CountActiveForEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.RSVP{}).
		Where("event_id = ? AND status IN ?", eventID,
			[]models.RSVPStatus{models.RSVPStatusPending, models.RSVPStatusConfirmed}).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("rsvp active count failed", zap.Uint("eventID", eventID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ListByUserEmail returns a member's reservations, newest first. Joining on
// active events drops RSVPs whose event was soft-deleted.
func (r *RSVPRepository) ListByUserEmail(ctx context.Context, email string, opts RSVPListOptions) ([]models.RSVP, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	q := r.getDB(ctx).Model(&models.RSVP{}).
		Joins("JOIN events ON events.id = rsvps.event_id AND events.is_active = ?", true).
		Where("rsvps.user_email = ?", email).
		Preload("Event")

	if opts.Status != "" {
		q = q.Where("rsvps.status = ?", opts.Status)
	}
	if opts.UpcomingOnly {
		q = q.Where("events.date > ?", now)
	}

	var rsvps []models.RSVP
	if err := q.Order("rsvps.submitted_at DESC").Find(&rsvps).Error; err != nil {
		configslog.Log.Error("rsvp list by user failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

// ListByEventID returns an event's reservations, newest first.
func (r *RSVPRepository) ListByEventID(ctx context.Context, eventID uint, status string) ([]models.RSVP, error) {
	q := r.getDB(ctx).Where("event_id = ?", eventID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rsvps []models.RSVP
	if err := q.Order("submitted_at DESC").Find(&rsvps).Error; err != nil {
		configslog.Log.Error("rsvp list by event failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

// CountByStatusForEvent aggregates reservation counts per status.
func (r *RSVPRepository) CountByStatusForEvent(ctx context.Context, eventID uint) (map[models.RSVPStatus]int64, error) {
	type row struct {
		Status models.RSVPStatus
		Count  int64
	}
	var rows []row
	err := r.getDB(ctx).Model(&models.RSVP{}).
		Select("status, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("rsvp stats failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	stats := make(map[models.RSVPStatus]int64, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}

// UpdateStatus writes a new status for the reservation.
func (r *RSVPRepository) UpdateStatus(ctx context.Context, id uint, status models.RSVPStatus) error {
	result := r.getDB(ctx).Model(&models.RSVP{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("rsvp status update failed", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IRSVPRepository = (*RSVPRepository)(nil)
