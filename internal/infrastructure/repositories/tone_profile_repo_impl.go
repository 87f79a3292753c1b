package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/infrastructure/models"
)

type ToneProfileRepository struct {
	db *gorm.DB
}

func NewToneProfileRepository(db *gorm.DB) *ToneProfileRepository {
	return &ToneProfileRepository{db: db}
}

func (r *ToneProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error) {
	var m models.ToneProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// Save upserts the profile keyed by user_id. The read-modify-write cycle is
// not guarded; concurrent saves for the same user are last-write-wins.
func (r *ToneProfileRepository) Save(ctx context.Context, profile *entities.ToneProfile) error {
	m, err := r.toModel(profile)
	if err != nil {
		return err
	}

	var existing models.ToneProfile
	err = r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		profile.ID = m.ID
		profile.CreatedAt = m.CreatedAt
		return nil
	case err != nil:
		return err
	}

	updates := map[string]interface{}{
		"reinforced_phrases":  m.ReinforcedPhrases,
		"discouraged_phrases": m.DiscouragedPhrases,
		"target_length":       m.TargetLength,
		"exemplars":           m.Exemplars,
		"notes_analyzed":      m.NotesAnalyzed,
		"learning_complete":   m.LearningComplete,
		"style_summary":       m.StyleSummary,
		"last_updated":        m.LastUpdated,
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ToneProfile{}).
		Where("user_id = ?", profile.UserID).
		Updates(updates).Error; err != nil {
		return err
	}
	profile.ID = existing.ID
	return nil
}

func (r *ToneProfileRepository) toModel(e *entities.ToneProfile) (*models.ToneProfile, error) {
	reinforced, err := json.Marshal(e.ReinforcedPhrases)
	if err != nil {
		return nil, err
	}
	discouraged, err := json.Marshal(e.DiscouragedPhrases)
	if err != nil {
		return nil, err
	}
	exemplars, err := json.Marshal(e.Exemplars)
	if err != nil {
		return nil, err
	}

	var summary *string
	if e.StyleSummary != nil {
		raw, err := json.Marshal(e.StyleSummary)
		if err != nil {
			return nil, err
		}
		s := string(raw)
		summary = &s
	}

	lastUpdated := e.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	return &models.ToneProfile{
		ID:                 e.ID,
		UserID:             e.UserID,
		ReinforcedPhrases:  string(reinforced),
		DiscouragedPhrases: string(discouraged),
		TargetLength:       e.TargetLength,
		Exemplars:          string(exemplars),
		NotesAnalyzed:      e.NotesAnalyzed,
		LearningComplete:   e.LearningComplete,
		StyleSummary:       summary,
		LastUpdated:        lastUpdated,
		CreatedAt:          e.CreatedAt,
	}, nil
}

func (r *ToneProfileRepository) toEntity(m *models.ToneProfile) (*entities.ToneProfile, error) {
	e := &entities.ToneProfile{
		ID:               m.ID,
		UserID:           m.UserID,
		TargetLength:     m.TargetLength,
		NotesAnalyzed:    m.NotesAnalyzed,
		LearningComplete: m.LearningComplete,
		LastUpdated:      m.LastUpdated,
		CreatedAt:        m.CreatedAt,
	}

	if m.ReinforcedPhrases != "" {
		if err := json.Unmarshal([]byte(m.ReinforcedPhrases), &e.ReinforcedPhrases); err != nil {
			return nil, err
		}
	}
	if m.DiscouragedPhrases != "" {
		if err := json.Unmarshal([]byte(m.DiscouragedPhrases), &e.DiscouragedPhrases); err != nil {
			return nil, err
		}
	}
	if m.Exemplars != "" {
		if err := json.Unmarshal([]byte(m.Exemplars), &e.Exemplars); err != nil {
			return nil, err
		}
	}
	if m.StyleSummary != nil && *m.StyleSummary != "" {
		e.StyleSummary = &entities.StyleSummary{}
		if err := json.Unmarshal([]byte(*m.StyleSummary), e.StyleSummary); err != nil {
			return nil, err
		}
	}
	return e, nil
}
