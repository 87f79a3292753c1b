package usecases_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/usecases"
)

func newLearning(profileRepo *MockToneProfileRepository, noteRepo *MockNoteRepository, gen *MockTextGenerator) *usecases.StyleLearningUsecase {
	return usecases.NewStyleLearningUsecase(profileRepo, noteRepo, gen)
}

func approvedNotes(n, length int) []*entities.Note {
	notes := make([]*entities.Note, n)
	for i := range notes {
		notes[i] = &entities.Note{
			ID:        uuid.New(),
			FinalText: null.StringFrom(strings.Repeat("x", length)),
			Status:    entities.NoteStatusApproved,
		}
	}
	return notes
}

func TestRecordApproval_SeedsProfileOnFirstApproval(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, new(MockNoteRepository), new(MockTextGenerator))
	err := uc.RecordApproval(context.Background(), userID, "same text", "same text")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, 290, saved.TargetLength, "unedited approval must not move the seeded target length")
	assert.Equal(t, 1, saved.NotesAnalyzed)
	assert.Equal(t, []string{"same text"}, saved.Exemplars)
	assert.Empty(t, saved.ReinforcedPhrases)
	assert.Empty(t, saved.DiscouragedPhrases)
}

func TestRecordApproval_MovesTargetLengthAsEMA(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:       userID,
		TargetLength: 290,
	}, nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, new(MockNoteRepository), new(MockTextGenerator))
	final := strings.Repeat("y", 400)
	err := uc.RecordApproval(context.Background(), userID, "short draft", final)
	require.NoError(t, err)

	// round(290*0.8 + 400*0.2) = 312
	assert.Equal(t, 312, saved.TargetLength)
}

func TestRecordApproval_PhraseExtractionIsCappedPerEvent(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:       userID,
		TargetLength: 290,
	}, nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, new(MockNoteRepository), new(MockTextGenerator))
	draft := "origin draft wording here entirely"
	final := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	err := uc.RecordApproval(context.Background(), userID, draft, final)
	require.NoError(t, err)

	// The rewrite introduced nine new bigrams; only five may land.
	assert.Len(t, saved.ReinforcedPhrases, 5)
	assert.Contains(t, saved.ReinforcedPhrases, "alpha beta")
	// And struck four draft bigrams, all kept (below the cap).
	assert.Len(t, saved.DiscouragedPhrases, 4)
	assert.Contains(t, saved.DiscouragedPhrases, "origin draft")
}

func TestRecordApproval_ProfileListsEvictOldestBeyondCap(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	userID := uuid.New()

	existing := make([]string, 20)
	for i := range existing {
		existing[i] = strings.Repeat("p", 4) + " " + string(rune('a'+i)) + "tail"
	}
	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:            userID,
		TargetLength:      290,
		ReinforcedPhrases: existing,
	}, nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, new(MockNoteRepository), new(MockTextGenerator))
	err := uc.RecordApproval(context.Background(), userID, "plain note", "truly grateful wording")
	require.NoError(t, err)

	assert.Len(t, saved.ReinforcedPhrases, 20, "reinforced list stays at its cap")
	assert.Contains(t, saved.ReinforcedPhrases, "truly grateful", "newest phrase survives")
	assert.NotContains(t, saved.ReinforcedPhrases, existing[0], "oldest phrase evicted")
}

func TestRecordApproval_ExemplarsKeepNewestThree(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:       userID,
		TargetLength: 290,
		Exemplars:    []string{"one", "two", "three"},
	}, nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, new(MockNoteRepository), new(MockTextGenerator))
	err := uc.RecordApproval(context.Background(), userID, "four", "four")
	require.NoError(t, err)

	assert.Equal(t, []string{"two", "three", "four"}, saved.Exemplars)
}

func TestRunDeepAnalysis_ReplacesProfileWholesale(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	noteRepo := new(MockNoteRepository)
	gen := new(MockTextGenerator)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:             userID,
		TargetLength:       310,
		ReinforcedPhrases:  []string{"old phrase"},
		DiscouragedPhrases: []string{"bad phrase"},
		NotesAnalyzed:      25,
	}, nil)
	noteRepo.On("ListApprovedByUser", mock.Anything, userID, 25).Return(approvedNotes(25, 300), nil)

	// Only the first ten notes are quoted in the prompt.
	gen.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Note 10:") && !strings.Contains(prompt, "Note 11:")
	})).Return(`{
		"tone_description": "warm, brief",
		"average_length": 295,
		"sentence_structure": "short declaratives",
		"common_phrases": ["so glad", "thank you again"],
		"opening_style": "first name",
		"closing_style": "warm sign-off",
		"formality": "casual",
		"enthusiasm_level": "high",
		"example_notes": ["Hey Sam, thanks!"],
		"key_characteristics": ["personal detail"]
	}`, nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, noteRepo, gen)
	require.NoError(t, uc.RunDeepAnalysis(context.Background(), userID))

	require.NotNil(t, saved)
	assert.True(t, saved.LearningComplete)
	require.NotNil(t, saved.StyleSummary)
	assert.Equal(t, "warm, brief", saved.StyleSummary.ToneDescription)
	assert.Equal(t, 295, saved.TargetLength)
	assert.Equal(t, []string{"so glad", "thank you again"}, saved.ReinforcedPhrases)
	assert.Empty(t, saved.DiscouragedPhrases, "incremental list discarded by the rebuild")
	assert.Equal(t, []string{"Hey Sam, thanks!"}, saved.Exemplars)
}

func TestRunDeepAnalysis_FailsClosedBelowThreshold(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	noteRepo := new(MockNoteRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{UserID: userID}, nil)
	noteRepo.On("ListApprovedByUser", mock.Anything, userID, 25).Return(approvedNotes(24, 300), nil)

	uc := newLearning(profileRepo, noteRepo, new(MockTextGenerator))
	err := uc.RunDeepAnalysis(context.Background(), userID)
	require.ErrorIs(t, err, domainerrors.ErrNotEnoughNotes)
	profileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunDeepAnalysis_UnparseableOutputFallsBack(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	noteRepo := new(MockNoteRepository)
	gen := new(MockTextGenerator)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{UserID: userID}, nil)
	noteRepo.On("ListApprovedByUser", mock.Anything, userID, 25).Return(approvedNotes(25, 280), nil)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("I cannot produce JSON today", nil)

	var saved *entities.ToneProfile
	profileRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entities.ToneProfile)
	}).Return(nil)

	uc := newLearning(profileRepo, noteRepo, gen)
	require.NoError(t, uc.RunDeepAnalysis(context.Background(), userID))

	assert.True(t, saved.LearningComplete, "the flag is set even on a degraded summary")
	require.NotNil(t, saved.StyleSummary)
	assert.Equal(t, 280, saved.StyleSummary.AverageLength, "average computed from the real notes")
	assert.Empty(t, saved.StyleSummary.CommonPhrases)
}

func TestRunDeepAnalysis_IdempotentOnceComplete(t *testing.T) {
	profileRepo := new(MockToneProfileRepository)
	noteRepo := new(MockNoteRepository)
	userID := uuid.New()

	profileRepo.On("GetByUserID", mock.Anything, userID).Return(&entities.ToneProfile{
		UserID:           userID,
		LearningComplete: true,
	}, nil)

	uc := newLearning(profileRepo, noteRepo, new(MockTextGenerator))
	require.NoError(t, uc.RunDeepAnalysis(context.Background(), userID))
	noteRepo.AssertNotCalled(t, "ListApprovedByUser", mock.Anything, mock.Anything, mock.Anything)
	profileRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBuildEditDelta(t *testing.T) {
	draft := "Thank you for the call. It was great!"
	final := "Thanks so much for the call today. It was great! Talk soon?"

	delta := usecases.BuildEditDelta(draft, final, time.Now())
	assert.True(t, delta.WasEdited)
	assert.Equal(t, len(draft), delta.OriginalLength)
	assert.Equal(t, len(final), delta.FinalLength)
	assert.Equal(t, len(final)-len(draft), delta.LengthDelta)
	assert.Equal(t, 2, delta.OriginalSentenceCount)
	assert.Equal(t, 3, delta.FinalSentenceCount)

	same := usecases.BuildEditDelta(draft, draft, time.Now())
	assert.False(t, same.WasEdited)
	assert.Zero(t, same.LengthDelta)
}

func TestBuildEditDelta_WhitespaceOnlyChangeCountsAsEdit(t *testing.T) {
	delta := usecases.BuildEditDelta("Thanks. ", "Thanks.", time.Now())
	assert.True(t, delta.WasEdited)
}
