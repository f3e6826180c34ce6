package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/notifier"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/pulseboard/pulseboard/internal/webhook"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/rs/zerolog/log"
)

// Repositories created from webhooks get these defaults until an
// integration supplies better values.
const (
	defaultProjectID     = "default"
	defaultBranch        = "main"
	defaultIngestTimeout = 5 * time.Second
)

// Publisher is the fan-out transport. Delivery is best-effort; Publish
// never reports failure to the caller.
type Publisher interface {
	Publish(group string, n domain.Notification)
}

// WebhookUsecase ingests webhook deliveries: it records the audit row,
// normalizes the payload, reconciles entities and fans out a derived
// notification.
type WebhookUsecase interface {
	// Ingest processes one delivery and reports success. It never
	// returns an error: partial failures degrade to logged skips.
	Ingest(ctx context.Context, provider, eventType string, payload []byte) bool
	// RecordRejected audits a delivery that was rejected before
	// parsing, e.g. on signature mismatch.
	RecordRejected(ctx context.Context, provider, eventType string, payload []byte, reason string)
}

type webhookUsecase struct {
	events      repository.WebhookEventStore
	repos       repository.RepositoryStore
	engineers   repository.EngineerStore
	commits     repository.CommitStore
	pulls       repository.PullRequestStore
	normalizers map[string]webhook.Normalizer
	publisher   Publisher
	timeout     time.Duration
}

// NewWebhookUsecase wires the ingestion pipeline. A zero timeout falls
// back to the default.
func NewWebhookUsecase(
	events repository.WebhookEventStore,
	repos repository.RepositoryStore,
	engineers repository.EngineerStore,
	commits repository.CommitStore,
	pulls repository.PullRequestStore,
	publisher Publisher,
	timeout time.Duration,
	normalizers ...webhook.Normalizer,
) WebhookUsecase {
	byProvider := make(map[string]webhook.Normalizer, len(normalizers))
	for _, n := range normalizers {
		byProvider[n.Provider()] = n
	}
	if timeout <= 0 {
		timeout = defaultIngestTimeout
	}
	return &webhookUsecase{
		events:      events,
		repos:       repos,
		engineers:   engineers,
		commits:     commits,
		pulls:       pulls,
		normalizers: byProvider,
		publisher:   publisher,
		timeout:     timeout,
	}
}

func (u *webhookUsecase) Ingest(ctx context.Context, provider, eventType string, payload []byte) bool {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	// The audit row is written before any parsing so every delivery
	// attempt is recorded. A failed audit write never blocks ingestion.
	var auditID uint
	if event, err := u.events.Record(ctx, provider, eventType, payload); err != nil {
		log.Error().Err(err).Str("provider", provider).Msg("failed to record webhook event")
	} else {
		auditID = event.ID
	}

	ok, procErr := u.process(ctx, provider, eventType, payload)
	if procErr != nil {
		log.Warn().Err(procErr).Str("provider", provider).Str("event_type", eventType).Msg("webhook processing incomplete")
	}

	if auditID != 0 {
		errText := ""
		if procErr != nil {
			errText = procErr.Error()
		}
		if err := u.events.MarkResult(ctx, auditID, ok, errText); err != nil {
			log.Error().Err(err).Uint("event_id", auditID).Msg("failed to mark webhook event result")
		}
	}
	return ok
}

func (u *webhookUsecase) RecordRejected(ctx context.Context, provider, eventType string, payload []byte, reason string) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	event, err := u.events.Record(ctx, provider, eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("provider", provider).Msg("failed to record rejected webhook event")
		return
	}
	if err := u.events.MarkResult(ctx, event.ID, false, reason); err != nil {
		log.Error().Err(err).Uint("event_id", event.ID).Msg("failed to mark rejected webhook event")
	}
}

// process returns (processed, err). processed=false only when the
// envelope itself is unusable; per-item failures keep processed=true
// with the error recorded for diagnostics.
func (u *webhookUsecase) process(ctx context.Context, provider, eventType string, payload []byte) (bool, error) {
	normalizer, ok := u.normalizers[provider]
	if !ok {
		return false, errcodes.ErrUnknownProvider
	}

	ev, err := normalizer.Normalize(eventType, payload)
	if err != nil {
		if errors.Is(err, errcodes.ErrMissingItemIdentity) {
			// the single item was unusable but the envelope parsed
			return true, err
		}
		return false, err
	}

	repo, err := u.resolveRepository(ctx, ev.Repo)
	if err != nil {
		return false, fmt.Errorf("resolve repository %q: %w", ev.Repo.Name, err)
	}

	switch ev.Kind {
	case webhook.KindPush:
		created := 0
		for _, nc := range ev.Commits {
			if err := u.reconcileCommit(ctx, repo, nc); err != nil {
				if !errors.Is(err, errcodes.ErrAlreadyExists) {
					log.Warn().Err(err).Str("hash", nc.Hash).Str("repository", repo.Name).Msg("skipping commit")
				}
				continue
			}
			created++
		}
		u.publishPush(repo, ev, created)
	case webhook.KindPullRequest:
		pr, err := u.reconcilePullRequest(ctx, repo, ev.PullRequest)
		if err != nil {
			log.Warn().Err(err).Int64("native_id", ev.PullRequest.NativeID).Msg("skipping pull request")
			return true, err
		}
		u.publishPullRequest(repo, ev, pr)
	}

	return true, nil
}

// resolveRepository looks a repository up by name OR url and creates it
// on first sight. A racing concurrent create is absorbed by re-reading.
func (u *webhookUsecase) resolveRepository(ctx context.Context, nr webhook.NormalizedRepo) (*domain.Repository, error) {
	repo, err := u.repos.ByNameOrURL(ctx, nr.Name, nr.URL)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, errcodes.ErrNoRecordFound) {
		return nil, err
	}

	created, err := u.repos.Save(ctx, domain.Repository{
		PublicID:      uuid.NewString(),
		ProjectID:     defaultProjectID,
		Name:          nr.Name,
		URL:           nr.URL,
		DefaultBranch: defaultBranch,
		Active:        true,
	})
	if err != nil {
		if errors.Is(err, errcodes.ErrAlreadyExists) {
			return u.repos.ByNameOrURL(ctx, nr.Name, nr.URL)
		}
		return nil, err
	}
	return created, nil
}

// resolveEngineer resolves by email only. The display name sticks from
// the first-seen delivery. An empty email resolves to no engineer.
func (u *webhookUsecase) resolveEngineer(ctx context.Context, name, email string) *uint {
	if email == "" {
		return nil
	}

	engineer, err := u.engineers.ByEmail(ctx, email)
	if err == nil {
		return &engineer.ID
	}
	if !errors.Is(err, errcodes.ErrNoRecordFound) {
		log.Warn().Err(err).Str("email", email).Msg("engineer lookup failed")
		return nil
	}

	now := time.Now().UTC()
	created, err := u.engineers.Save(ctx, domain.Engineer{
		Email:    email,
		Name:     name,
		Active:   true,
		JoinedAt: now,
	})
	if err != nil {
		if errors.Is(err, errcodes.ErrAlreadyExists) {
			if existing, lookupErr := u.engineers.ByEmail(ctx, email); lookupErr == nil {
				return &existing.ID
			}
		}
		log.Warn().Err(err).Str("email", email).Msg("engineer create failed")
		return nil
	}
	return &created.ID
}

// reconcileCommit inserts a commit unless the (repository, hash) pair
// already exists. Commit content is immutable: re-delivery never
// updates the stored row.
func (u *webhookUsecase) reconcileCommit(ctx context.Context, repo *domain.Repository, nc webhook.NormalizedCommit) error {
	if _, err := u.commits.ByRepoAndHash(ctx, repo.ID, nc.Hash); err == nil {
		return errcodes.ErrAlreadyExists
	} else if !errors.Is(err, errcodes.ErrNoRecordFound) {
		return err
	}

	commit := domain.Commit{
		CommitHash:   nc.Hash,
		RepositoryID: repo.ID,
		EngineerID:   u.resolveEngineer(ctx, nc.AuthorName, nc.AuthorEmail),
		Message:      nc.Message,
		AuthorName:   nc.AuthorName,
		AuthorEmail:  nc.AuthorEmail,
		Date:         nc.Timestamp,
		URL:          nc.URL,
		FilesChanged: nc.FilesChanged,
		Additions:    nc.Additions,
		Deletions:    nc.Deletions,
	}

	if _, err := u.commits.Save(ctx, commit); err != nil {
		// a racing delivery inserted the same hash first: skip
		return err
	}
	return nil
}

// reconcilePullRequest upserts by (repository, native id). Mutable
// fields track the latest delivery; ClosedAt is stamped once when the
// status first turns terminal and never cleared.
func (u *webhookUsecase) reconcilePullRequest(ctx context.Context, repo *domain.Repository, np *webhook.NormalizedPullRequest) (*domain.PullRequest, error) {
	existing, err := u.pulls.ByRepoAndNativeID(ctx, repo.ID, np.NativeID)
	if err != nil && !errors.Is(err, errcodes.ErrNoRecordFound) {
		return nil, err
	}

	if existing == nil {
		pr := domain.PullRequest{
			NativeID:     np.NativeID,
			RepositoryID: repo.ID,
			EngineerID:   u.resolveEngineer(ctx, np.AuthorName, np.AuthorEmail),
			Title:        np.Title,
			Description:  np.Description,
			Status:       np.Status,
			SourceRef:    np.SourceRef,
			TargetRef:    np.TargetRef,
			URL:          np.URL,
			OpenedAt:     np.CreatedAt,
		}
		if domain.IsTerminalStatus(np.Status) {
			now := time.Now().UTC()
			pr.ClosedAt = &now
		}

		saved, err := u.pulls.Save(ctx, pr)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, errcodes.ErrAlreadyExists) {
			return nil, err
		}
		// racing delivery created it first: fall through to update
		existing, err = u.pulls.ByRepoAndNativeID(ctx, repo.ID, np.NativeID)
		if err != nil {
			return nil, err
		}
	}

	existing.Title = np.Title
	existing.Description = np.Description
	existing.Status = np.Status
	existing.SourceRef = np.SourceRef
	existing.TargetRef = np.TargetRef
	existing.URL = np.URL
	if domain.IsTerminalStatus(np.Status) && existing.ClosedAt == nil {
		now := time.Now().UTC()
		existing.ClosedAt = &now
	}

	return u.pulls.Update(ctx, *existing)
}

func (u *webhookUsecase) publishPush(repo *domain.Repository, ev *webhook.Event, created int) {
	n := domain.Notification{
		ID:             uuid.NewString(),
		Type:           webhook.KindPush,
		Title:          "New commits in " + repo.Name,
		Message:        fmt.Sprintf("%d commit(s) recorded", created),
		Severity:       domain.SeverityInfo,
		Timestamp:      time.Now().UTC(),
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		Metadata: map[string]string{
			"commits": strconv.Itoa(created),
			"skipped": strconv.Itoa(ev.Skipped),
		},
	}
	u.publish(ev.EventType, repo.ID, n)
}

func (u *webhookUsecase) publishPullRequest(repo *domain.Repository, ev *webhook.Event, pr *domain.PullRequest) {
	n := domain.Notification{
		ID:             uuid.NewString(),
		Type:           webhook.KindPullRequest,
		Title:          fmt.Sprintf("Pull request #%d %s", pr.NativeID, pr.Status),
		Message:        pr.Title,
		Severity:       domain.PullRequestSeverity(pr.Status),
		Timestamp:      time.Now().UTC(),
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		ActionURL:      pr.URL,
		Metadata: map[string]string{
			"native_id": strconv.FormatInt(pr.NativeID, 10),
			"status":    pr.Status,
		},
	}
	u.publish(ev.EventType, repo.ID, n)
}

func (u *webhookUsecase) publish(eventType string, repoID uint, n domain.Notification) {
	if u.publisher == nil {
		return
	}
	u.publisher.Publish(notifier.GroupAll, n)
	u.publisher.Publish(notifier.GroupRepository(repoID), n)
	u.publisher.Publish(notifier.GroupEventType(eventType), n)
}
