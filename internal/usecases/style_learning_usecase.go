package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
	"ekoink.backend/internal/telemetry"
	"ekoink.backend/pkg/logger"
)

// TextGenerator produces a completion from a system and user prompt.
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// StyleLearningUsecase accumulates a user's writing style from approval
// edits and, once enough notes exist, runs the one-shot deep analysis that
// finalises the profile.
type StyleLearningUsecase struct {
	profileRepo repositories.ToneProfileRepository
	noteRepo    repositories.NoteRepository
	generator   TextGenerator
}

func NewStyleLearningUsecase(
	profileRepo repositories.ToneProfileRepository,
	noteRepo repositories.NoteRepository,
	generator TextGenerator,
) *StyleLearningUsecase {
	return &StyleLearningUsecase{
		profileRepo: profileRepo,
		noteRepo:    noteRepo,
		generator:   generator,
	}
}

// BuildEditDelta computes the audit record for one approval. Any difference
// between draft and final, including whitespace, counts as an edit.
func BuildEditDelta(draft, final string, now time.Time) *entities.EditDelta {
	return &entities.EditDelta{
		WasEdited:             draft != final,
		OriginalLength:        len(draft),
		FinalLength:           len(final),
		LengthDelta:           len(final) - len(draft),
		OriginalWordCount:     len(strings.Fields(draft)),
		FinalWordCount:        len(strings.Fields(final)),
		OriginalSentenceCount: len(splitSentences(draft)),
		FinalSentenceCount:    len(splitSentences(final)),
		RecordedAt:            now,
	}
}

// RecordApproval folds a single approval into the user's tone profile.
// An unedited approval only records the exemplar and bumps counters; an
// edited one also moves the phrase lists and the target length.
func (u *StyleLearningUsecase) RecordApproval(ctx context.Context, userID uuid.UUID, draft, final string) error {
	profile, err := u.loadOrSeedProfile(ctx, userID)
	if err != nil {
		return err
	}

	if draft != final {
		added, removed := phraseDiff(draft, final)
		profile.ReinforcedPhrases = appendCapped(profile.ReinforcedPhrases, added, maxReinforcedPhrases)
		profile.DiscouragedPhrases = appendCapped(profile.DiscouragedPhrases, removed, maxDiscouragedPhrases)
		profile.TargetLength = nextTargetLength(profile.TargetLength, len(final))
	}

	profile.Exemplars = appendCapped(profile.Exemplars, []string{final}, maxExemplars)
	profile.NotesAnalyzed++
	profile.LastUpdated = time.Now()

	return u.profileRepo.Save(ctx, profile)
}

// RunDeepAnalysis replaces the incrementally-built profile with an
// AI-authored style summary. It is idempotent: a profile already marked
// complete is left alone. Fewer than the threshold of qualifying notes is
// an error; the caller fires this exactly when the threshold is crossed,
// so a shortfall means notes were deleted or never persisted.
func (u *StyleLearningUsecase) RunDeepAnalysis(ctx context.Context, userID uuid.UUID) error {
	profile, err := u.loadOrSeedProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile.LearningComplete {
		return nil
	}

	notes, err := u.noteRepo.ListApprovedByUser(ctx, userID, learningThreshold)
	if err != nil {
		return err
	}
	if len(notes) < learningThreshold {
		return fmt.Errorf("%w: have %d, need %d", domainerrors.ErrNotEnoughNotes, len(notes), learningThreshold)
	}

	sample := notes
	if len(sample) > deepAnalysisSampleSize {
		sample = sample[:deepAnalysisSampleSize]
	}

	summary, parseErr := u.requestStyleSummary(ctx, sample)
	if parseErr != nil {
		// The analysis still completes: a degraded summary beats
		// re-running the threshold trigger forever.
		logger.Warn(ctx, "deep analysis fell back to computed summary",
			zap.String("user_id", userID.String()),
			zap.Error(parseErr),
		)
		summary = fallbackSummary(notes)
		telemetry.DeepAnalysisRunsTotal.WithLabelValues("fallback").Inc()
	} else {
		telemetry.DeepAnalysisRunsTotal.WithLabelValues("parsed").Inc()
	}

	profile.StyleSummary = summary
	profile.ReinforcedPhrases = summary.CommonPhrases
	profile.DiscouragedPhrases = nil
	profile.TargetLength = summary.AverageLength
	profile.Exemplars = appendCapped(nil, summary.ExampleNotes, maxExemplars)
	profile.NotesAnalyzed = len(notes)
	profile.LearningComplete = true
	profile.LastUpdated = time.Now()

	return u.profileRepo.Save(ctx, profile)
}

// GetProfile returns the user's profile, seeded with defaults when none
// has been persisted yet.
func (u *StyleLearningUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error) {
	return u.loadOrSeedProfile(ctx, userID)
}

// StylePrompt renders the profile as generation guidance. Before the deep
// analysis it uses the incremental phrase lists; after, the AI summary.
func StylePrompt(profile *entities.ToneProfile) string {
	var b strings.Builder

	if profile.LearningComplete && profile.StyleSummary != nil {
		s := profile.StyleSummary
		fmt.Fprintf(&b, "Write in this voice: %s.\n", s.ToneDescription)
		fmt.Fprintf(&b, "Formality: %s. Enthusiasm: %s.\n", s.Formality, s.EnthusiasmLevel)
		fmt.Fprintf(&b, "Open like: %s\nClose like: %s\n", s.OpeningStyle, s.ClosingStyle)
		fmt.Fprintf(&b, "Aim for about %d characters.\n", s.AverageLength)
		if len(s.CommonPhrases) > 0 {
			fmt.Fprintf(&b, "Favor phrases such as: %s.\n", strings.Join(s.CommonPhrases, "; "))
		}
		for _, ex := range s.ExampleNotes {
			fmt.Fprintf(&b, "Example of their writing:\n%s\n", ex)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Aim for about %d characters.\n", profile.TargetLength)
	if len(profile.ReinforcedPhrases) > 0 {
		fmt.Fprintf(&b, "The writer likes phrases such as: %s.\n", strings.Join(profile.ReinforcedPhrases, "; "))
	}
	if len(profile.DiscouragedPhrases) > 0 {
		fmt.Fprintf(&b, "Avoid phrases such as: %s.\n", strings.Join(profile.DiscouragedPhrases, "; "))
	}
	for _, ex := range profile.Exemplars {
		fmt.Fprintf(&b, "Example of their writing:\n%s\n", ex)
	}
	return b.String()
}

func (u *StyleLearningUsecase) loadOrSeedProfile(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	return &entities.ToneProfile{
		UserID:       userID,
		TargetLength: targetLengthSeed,
	}, nil
}

func (u *StyleLearningUsecase) requestStyleSummary(ctx context.Context, sample []*entities.Note) (*entities.StyleSummary, error) {
	var prompt strings.Builder
	prompt.WriteString("Here are thank-you notes a salesperson approved, oldest first:\n\n")
	for i, n := range sample {
		fmt.Fprintf(&prompt, "Note %d:\n%s\n\n", i+1, n.FinalText.String)
	}
	prompt.WriteString(`Analyse their writing style. Respond with only a JSON object with these keys:
tone_description, average_length (integer, characters), sentence_structure,
common_phrases (array), opening_style, closing_style, formality,
enthusiasm_level, example_notes (array of up to 3 verbatim notes),
key_characteristics (array).`)

	raw, err := u.generator.Complete(ctx,
		"You are a writing-style analyst. Respond with valid JSON only.",
		prompt.String(),
	)
	if err != nil {
		return nil, err
	}

	summary := &entities.StyleSummary{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), summary); err != nil {
		return nil, fmt.Errorf("parse style summary: %w", err)
	}
	return summary, nil
}

// fallbackSummary is used when the model's output cannot be parsed: the
// average length is real, the rest is neutral.
func fallbackSummary(notes []*entities.Note) *entities.StyleSummary {
	total := 0
	for _, n := range notes {
		total += len(n.FinalText.String)
	}
	avg := 0
	if len(notes) > 0 {
		avg = total / len(notes)
	}
	return &entities.StyleSummary{
		ToneDescription: "warm and professional",
		AverageLength:   avg,
	}
}

// extractJSON pulls the outermost JSON object out of a completion that may
// be wrapped in code fences or prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// splitSentences splits on terminal punctuation and drops empty fragments.
func splitSentences(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// bigrams returns the lowercased two-word sliding windows of the text.
func bigrams(s string) []string {
	words := strings.Fields(strings.ToLower(s))
	if len(words) < 2 {
		return nil
	}
	out := make([]string, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// phraseDiff returns the phrases the edit introduced (present in final,
// absent from draft) and the ones it struck (present in draft, absent from
// final). Short phrases are noise and are dropped; each side is capped so a
// single heavy rewrite cannot flood the profile.
func phraseDiff(draft, final string) (added, removed []string) {
	draftSet := toSet(bigrams(draft))
	finalSet := toSet(bigrams(final))

	for _, p := range bigrams(final) {
		if len(added) >= maxPhrasesPerEvent {
			break
		}
		if len(p) < minPhraseLength {
			continue
		}
		if _, inDraft := draftSet[p]; !inDraft {
			added = appendUnique(added, p)
		}
	}
	for _, p := range bigrams(draft) {
		if len(removed) >= maxPhrasesPerEvent {
			break
		}
		if len(p) < minPhraseLength {
			continue
		}
		if _, inFinal := finalSet[p]; !inFinal {
			removed = appendUnique(removed, p)
		}
	}
	return added, removed
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// appendCapped appends items, deduplicating, then keeps the newest limit
// entries.
func appendCapped(list, items []string, limit int) []string {
	for _, it := range items {
		list = appendUnique(list, it)
	}
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}

// nextTargetLength moves the target length toward the latest approved
// final as an exponential moving average.
func nextTargetLength(current, finalLength int) int {
	return int(math.Round(targetLengthOldWeight*float64(current) + targetLengthNewWeight*float64(finalLength)))
}
