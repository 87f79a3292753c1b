package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
	"ekoink.backend/internal/infrastructure/jobs"
	"ekoink.backend/internal/infrastructure/mail"
	"ekoink.backend/internal/telemetry"
	"ekoink.backend/pkg/logger"
)

const backgroundTaskTimeout = 2 * time.Minute

// CardSender submits physical card orders.
type CardSender interface {
	CreateOrder(ctx context.Context, order mail.Order) (string, error)
}

// TaskQueue runs named background work.
type TaskQueue interface {
	Submit(name string, timeout time.Duration, fn jobs.TaskFunc) bool
}

// QuotaExceededError carries the numbers the API reports alongside a 429.
type QuotaExceededError struct {
	Limit int
	Usage int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly card quota exceeded: %d of %d used", e.Usage, e.Limit)
}

func (e *QuotaExceededError) Unwrap() error {
	return domainerrors.ErrQuotaExceeded
}

// NoteUsecase owns the note lifecycle: draft generation, human approval
// with its learning side effects, and physical sending.
type NoteUsecase struct {
	noteRepo  repositories.NoteRepository
	userRepo  repositories.UserRepository
	dealRepo  repositories.DealRepository
	callRepo  repositories.CallRepository
	learning  *StyleLearningUsecase
	usage     *UsageUsecase
	generator TextGenerator
	mailer    CardSender
	tasks     TaskQueue
}

func NewNoteUsecase(
	noteRepo repositories.NoteRepository,
	userRepo repositories.UserRepository,
	dealRepo repositories.DealRepository,
	callRepo repositories.CallRepository,
	learning *StyleLearningUsecase,
	usage *UsageUsecase,
	generator TextGenerator,
	mailer CardSender,
	tasks TaskQueue,
) *NoteUsecase {
	return &NoteUsecase{
		noteRepo:  noteRepo,
		userRepo:  userRepo,
		dealRepo:  dealRepo,
		callRepo:  callRepo,
		learning:  learning,
		usage:     usage,
		generator: generator,
		mailer:    mailer,
		tasks:     tasks,
	}
}

// Generate drafts a note for a deal or call, biased by the user's tone
// profile, and persists it awaiting approval.
func (u *NoteUsecase) Generate(ctx context.Context, accountID, userID uuid.UUID, input *entities.GenerateNoteInput) (*entities.Note, error) {
	var contextText strings.Builder

	if input.DealID != nil {
		deal, err := u.dealRepo.GetByID(ctx, *input.DealID)
		if err != nil {
			return nil, err
		}
		if deal.AccountID != accountID {
			return nil, domainerrors.ErrNotFound
		}
		fmt.Fprintf(&contextText, "Deal closed with %s", deal.CustomerName)
		if deal.Company.Valid {
			fmt.Fprintf(&contextText, " at %s", deal.Company.String)
		}
		if deal.AmountCents > 0 {
			fmt.Fprintf(&contextText, " worth $%.2f", float64(deal.AmountCents)/100)
		}
		contextText.WriteString(".\n")
	}
	if input.CallID != nil {
		call, err := u.callRepo.GetByID(ctx, *input.CallID)
		if err != nil {
			return nil, err
		}
		if call.AccountID != accountID {
			return nil, domainerrors.ErrNotFound
		}
		if call.Summary.Valid {
			fmt.Fprintf(&contextText, "Call summary: %s\n", call.Summary.String)
		} else {
			fmt.Fprintf(&contextText, "Call transcript:\n%s\n", truncateText(call.Transcript, 4000))
		}
	}

	profile, err := u.learning.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	system := "You write short, sincere thank-you notes from a salesperson to a customer. " +
		"Write only the note body, no subject line.\n" + StylePrompt(profile)
	user := fmt.Sprintf("Write a thank-you note to %s.\n%s", input.RecipientName, contextText.String())

	draft, err := u.generator.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	note := &entities.Note{
		AccountID:     accountID,
		UserID:        userID,
		DealID:        input.DealID,
		CallID:        input.CallID,
		RecipientName: input.RecipientName,
		DraftText:     strings.TrimSpace(draft),
		Status:        entities.NoteStatusDraft,
	}
	if err := u.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Approve records the human's final text, folds the edit into the tone
// profile, and fires the threshold side effects. Learning failures never
// block the approval itself.
func (u *NoteUsecase) Approve(ctx context.Context, accountID, noteID uuid.UUID, input *entities.ApproveNoteInput) (*entities.ApproveNoteResponse, error) {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.AccountID != accountID {
		return nil, domainerrors.ErrNotFound
	}
	if note.Status != entities.NoteStatusDraft && note.Status != entities.NoteStatusPending {
		return nil, fmt.Errorf("%w: note is %s, only drafts can be approved", domainerrors.ErrBadRequest, note.Status)
	}

	now := time.Now()
	note.FinalText = null.StringFrom(input.FinalText)
	note.Status = entities.NoteStatusApproved
	note.ApprovedAt = &now
	note.EditDelta = BuildEditDelta(note.DraftText, input.FinalText, now)

	if err := u.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	approvedCount, err := u.userRepo.IncrementNotesApproved(ctx, note.UserID)
	if err != nil {
		return nil, err
	}
	telemetry.NotesApprovedTotal.WithLabelValues(strconv.FormatBool(note.EditDelta.WasEdited)).Inc()

	if err := u.learning.RecordApproval(ctx, note.UserID, note.DraftText, input.FinalText); err != nil {
		logger.Error(ctx, "tone profile update failed, approval continues",
			zap.String("note_id", note.ID.String()),
			zap.Error(err),
		)
	}

	resp := &entities.ApproveNoteResponse{
		Note:          note,
		ApprovedCount: approvedCount,
	}

	if approvedCount == learningThreshold {
		resp.ThresholdReached = true
		resp.DeepAnalysisTriggered = true
		userID := note.UserID
		u.tasks.Submit("deep-style-analysis", backgroundTaskTimeout, func(taskCtx context.Context) error {
			return u.learning.RunDeepAnalysis(taskCtx, userID)
		})
	}

	if approvedCount > learningThreshold {
		profile, err := u.learning.GetProfile(ctx, note.UserID)
		if err != nil {
			logger.Error(ctx, "auto-send profile check failed", zap.Error(err))
		} else if profile.LearningComplete {
			resp.AutoSendTriggered = true
			noteID := note.ID
			u.tasks.Submit("auto-send-note", backgroundTaskTimeout, func(taskCtx context.Context) error {
				return u.autoSend(taskCtx, accountID, noteID)
			})
		}
	}

	return resp, nil
}

// Send mails an approved note, charging the account and enforcing the
// monthly card quota.
func (u *NoteUsecase) Send(ctx context.Context, accountID, noteID uuid.UUID, input *entities.SendNoteInput) (*entities.Note, error) {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.AccountID != accountID {
		return nil, domainerrors.ErrNotFound
	}
	if note.Status != entities.NoteStatusApproved {
		return nil, fmt.Errorf("%w: note is %s, only approved notes can be sent", domainerrors.ErrBadRequest, note.Status)
	}
	if input != nil && input.RecipientAddress != "" {
		note.RecipientAddress = null.StringFrom(input.RecipientAddress)
	}
	if !note.RecipientAddress.Valid || note.RecipientAddress.String == "" {
		return nil, fmt.Errorf("%w: recipient address required", domainerrors.ErrBadRequest)
	}

	quota, err := u.usage.CheckCardQuota(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !quota.Allowed {
		return nil, &QuotaExceededError{Limit: quota.Limit, Usage: quota.Usage}
	}

	orderID, err := u.mailer.CreateOrder(ctx, mail.Order{
		Message:          note.FinalText.String,
		RecipientName:    note.RecipientName,
		RecipientAddress: note.RecipientAddress.String,
	})
	if err != nil {
		note.Status = entities.NoteStatusFailed
		if updateErr := u.noteRepo.Update(ctx, note); updateErr != nil {
			logger.Error(ctx, "failed to mark note failed", zap.Error(updateErr))
		}
		return nil, err
	}

	now := time.Now()
	note.HandwriteOrderID = null.StringFrom(orderID)
	note.Status = entities.NoteStatusSent
	note.SentAt = &now
	if err := u.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err := u.usage.RecordCardSent(ctx, accountID); err != nil {
		logger.Error(ctx, "card sent but usage not recorded",
			zap.String("note_id", note.ID.String()),
			zap.Error(err),
		)
	}
	telemetry.CardsSentTotal.Inc()
	return note, nil
}

// GetByID returns a note, scoped to the caller's account.
func (u *NoteUsecase) GetByID(ctx context.Context, accountID, noteID uuid.UUID) (*entities.Note, error) {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.AccountID != accountID {
		return nil, domainerrors.ErrNotFound
	}
	return note, nil
}

// List returns the account's notes, newest first.
func (u *NoteUsecase) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Note, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.noteRepo.ListByAccount(ctx, accountID, limit, offset)
}

func (u *NoteUsecase) autoSend(ctx context.Context, accountID, noteID uuid.UUID) error {
	_, err := u.Send(ctx, accountID, noteID, nil)
	return err
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
