package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
	"devclub.community/models"
	"devclub.community/pkg/queryparams"
)

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	Category string
	Upcoming bool
	Featured bool
	Now      time.Time
}

// IEventRepository covers event persistence.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindActiveByID(ctx context.Context, id uint) (*models.Event, error)
	FindActiveByIDForUpdate(ctx context.Context, id uint) (*models.Event, error)
	List(ctx context.Context, filter EventFilter, params queryparams.ListParams) ([]models.Event, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	ReplaceImages(ctx context.Context, id uint, images []models.EventImage) error
	Deactivate(ctx context.Context, id uint) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

// EventRepository implements IEventRepository on GORM.
type EventRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewEventRepository builds a repository on the shared connection.
func NewEventRepository() IEventRepository {
	return &EventRepository{db: configs.GetDB()}
}

// NewEventRepositoryTx builds a repository bound to an existing transaction.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx, inTx: true}
}

// NewEventRepositoryDB builds a repository on an explicit handle; used by
// tests and by services that manage their own transactions.
func NewEventRepositoryDB(db *gorm.DB) IEventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	if r.inTx {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// Create persists a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil {
		return errors.New("event must not be nil")
	}
	return r.getDB(ctx).Create(event).Error
}

// FindActiveByID returns the event only when it exists and is active.
// Soft-deleted events read as not found on purpose.
func (r *EventRepository) FindActiveByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.getDB(ctx).
		Preload("Images").
		Where("id = ? AND is_active = ?", id, true).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("event FindActiveByID failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindActiveByIDForUpdate is FindActiveByID with a row lock, for use inside
// the admission transaction. The lock serializes capacity checks per event
// on databases that support SELECT ... FOR UPDATE.
func (r *EventRepository) FindActiveByIDForUpdate(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	tx := r.getDB(ctx)
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := tx.Where("id = ? AND is_active = ?", id, true).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("event FindActiveByIDForUpdate failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// List returns a page of active events plus the total match count.
func (r *EventRepository) List(ctx context.Context, filter EventFilter, params queryparams.ListParams) ([]models.Event, int64, error) {
	q := r.getDB(ctx).Model(&models.Event{}).Where("is_active = ?", true)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	now := filter.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if filter.Upcoming {
		q = q.Where("date > ?", now)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		configslog.Log.Error("event list count failed", zap.Error(err))
		return nil, 0, err
	}

	order := "date DESC"
	if filter.Upcoming {
		order = "date ASC"
	}

	var events []models.Event
	err := q.Preload("Images").
		Order(order).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("event list failed", zap.Error(err))
		return nil, 0, err
	}
	return events, total, nil
}

// Update applies a partial update to an active event. ErrNotFound covers
// both absent and already-inactive rows.
func (r *EventRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	result := r.getDB(ctx).Model(&models.Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(data)
	if result.Error != nil {
		configslog.Log.Error("event update failed", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceImages swaps the event's gallery for the given set. Only active
// events can be edited; an empty set clears the gallery.
func (r *EventRepository) ReplaceImages(ctx context.Context, id uint, images []models.EventImage) error {
	db := r.getDB(ctx)

	var count int64
	if err := db.Model(&models.Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		configslog.Log.Error("event image lookup failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := db.Where("event_id = ?", id).Delete(&models.EventImage{}).Error; err != nil {
		configslog.Log.Error("event image delete failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = 0
		images[i].EventID = id
	}
	if err := db.Create(&images).Error; err != nil {
		configslog.Log.Error("event image create failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Deactivate soft-deletes the event. A second call finds no active row and
// reports ErrNotFound, matching the update path.
func (r *EventRepository) Deactivate(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

// DistinctCategories lists the categories active events currently use.
func (r *EventRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.getDB(ctx).Model(&models.Event{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("category", &categories).Error
	if err != nil {
		configslog.Log.Error("event categories failed", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

var _ IEventRepository = (*EventRepository)(nil)
