package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/http/dtos"
	"github.com/pulseboard/pulseboard/internal/notifier"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
)

// ReviewUsecase creates and lists reviews, publishing a
// severity-classified notification on creation.
type ReviewUsecase interface {
	Create(ctx context.Context, input dtos.ReviewInput) (*domain.Review, error)
	ByPullRequest(ctx context.Context, pullRequestID uint) ([]domain.Review, error)
}

type reviewUsecase struct {
	reviews   repository.ReviewStore
	pulls     repository.PullRequestStore
	publisher Publisher
}

// NewReviewUsecase creates the review usecase.
func NewReviewUsecase(reviews repository.ReviewStore, pulls repository.PullRequestStore, publisher Publisher) ReviewUsecase {
	return &reviewUsecase{
		reviews:   reviews,
		pulls:     pulls,
		publisher: publisher,
	}
}

func (u *reviewUsecase) Create(ctx context.Context, input dtos.ReviewInput) (*domain.Review, error) {
	if input.PullRequestID == nil && input.CommitID == nil {
		return nil, errcodes.ErrMissingReviewTarget
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 10) {
		return nil, errcodes.ErrInvalidScore
	}

	reviewType := input.Type
	if reviewType != domain.ReviewTypeAI {
		reviewType = domain.ReviewTypeHuman
	}
	status := input.Status
	if status == "" {
		status = domain.ReviewStatusPending
	}

	review, err := u.reviews.Save(ctx, domain.Review{
		Type:          reviewType,
		Content:       input.Content,
		Score:         input.Score,
		Suggestions:   input.Suggestions,
		Status:        status,
		PullRequestID: input.PullRequestID,
		CommitID:      input.CommitID,
		EngineerID:    input.EngineerID,
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, review)
	return review, nil
}

func (u *reviewUsecase) ByPullRequest(ctx context.Context, pullRequestID uint) ([]domain.Review, error) {
	return u.reviews.ByPullRequest(ctx, pullRequestID)
}

// notify fans out a review notification. Best-effort: a missing pull
// request or repository only narrows the audience.
func (u *reviewUsecase) notify(ctx context.Context, review *domain.Review) {
	if u.publisher == nil {
		return
	}

	severity := domain.SeverityInfo
	message := "New review"
	if review.Score != nil {
		severity = domain.ReviewSeverity(*review.Score)
		message = fmt.Sprintf("Review scored %.1f/10", *review.Score)
	}

	n := domain.Notification{
		ID:        uuid.NewString(),
		Type:      "review",
		Title:     "Review " + review.Status,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]string{"review_type": review.Type},
	}

	u.publisher.Publish(notifier.GroupAll, n)

	if review.PullRequestID != nil {
		if pr, err := u.pulls.ByID(ctx, *review.PullRequestID); err == nil {
			n.RepositoryID = pr.RepositoryID
			u.publisher.Publish(notifier.GroupRepository(pr.RepositoryID), n)
			if pr.EngineerID != nil {
				u.publisher.Publish(notifier.GroupUser(*pr.EngineerID), n)
			}
		}
	}
}
