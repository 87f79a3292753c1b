package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/infrastructure/models"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	m, err := r.toModel(note)
	if err != nil {
		return err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	note.ID = m.ID
	note.CreatedAt = m.CreatedAt
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	var m models.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *NoteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Note, error) {
	var ms []models.Note
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms)
}

func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	m, err := r.toModel(note)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"recipient_name":     m.RecipientName,
		"recipient_address":  m.RecipientAddress,
		"draft_text":         m.DraftText,
		"final_text":         m.FinalText,
		"status":             m.Status,
		"edit_delta":         m.EditDelta,
		"handwrite_order_id": m.HandwriteOrderID,
		"approved_at":        m.ApprovedAt,
		"sent_at":            m.SentAt,
		"updated_at":         time.Now(),
	}

	result := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ?", note.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListApprovedByUser returns the most recently approved notes with non-empty
// final text, up to limit, reordered oldest first. Sent and delivered notes
// still count as approved for learning purposes.
func (r *NoteRepository) ListApprovedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Note, error) {
	var ms []models.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ? AND final_text IS NOT NULL AND final_text != ''",
			userID, []string{
				string(entities.NoteStatusApproved),
				string(entities.NoteStatusSent),
				string(entities.NoteStatusDelivered),
			}).
		Order("approved_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	notes, err := r.toEntities(ms)
	if err != nil {
		return nil, err
	}
	// The query walks backwards from the newest approval; callers want the
	// window oldest first.
	for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
		notes[i], notes[j] = notes[j], notes[i]
	}
	return notes, nil
}

func (r *NoteRepository) toEntities(ms []models.Note) ([]*entities.Note, error) {
	items := make([]*entities.Note, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *NoteRepository) toModel(e *entities.Note) (*models.Note, error) {
	var editDelta *string
	if e.EditDelta != nil {
		raw, err := json.Marshal(e.EditDelta)
		if err != nil {
			return nil, err
		}
		s := string(raw)
		editDelta = &s
	}
	return &models.Note{
		ID:               e.ID,
		AccountID:        e.AccountID,
		UserID:           e.UserID,
		DealID:           e.DealID,
		CallID:           e.CallID,
		RecipientName:    e.RecipientName,
		RecipientAddress: e.RecipientAddress.Ptr(),
		DraftText:        e.DraftText,
		FinalText:        e.FinalText.Ptr(),
		Status:           string(e.Status),
		EditDelta:        editDelta,
		HandwriteOrderID: e.HandwriteOrderID.Ptr(),
		ApprovedAt:       e.ApprovedAt,
		SentAt:           e.SentAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}

func (r *NoteRepository) toEntity(m *models.Note) (*entities.Note, error) {
	var editDelta *entities.EditDelta
	if m.EditDelta != nil && *m.EditDelta != "" {
		editDelta = &entities.EditDelta{}
		if err := json.Unmarshal([]byte(*m.EditDelta), editDelta); err != nil {
			return nil, err
		}
	}
	return &entities.Note{
		ID:               m.ID,
		AccountID:        m.AccountID,
		UserID:           m.UserID,
		DealID:           m.DealID,
		CallID:           m.CallID,
		RecipientName:    m.RecipientName,
		RecipientAddress: null.StringFromPtr(m.RecipientAddress),
		DraftText:        m.DraftText,
		FinalText:        null.StringFromPtr(m.FinalText),
		Status:           entities.NoteStatus(m.Status),
		EditDelta:        editDelta,
		HandwriteOrderID: null.StringFromPtr(m.HandwriteOrderID),
		ApprovedAt:       m.ApprovedAt,
		SentAt:           m.SentAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
