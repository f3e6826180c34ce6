package repository

import (
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// Repository is the GORM model backing domain.Repository. Uniqueness of
// (project_id, name) is enforced by the database; the reconciler relies
// on it under concurrent deliveries.
type Repository struct {
	ID            uint   `gorm:"primaryKey"`
	PublicID      string `gorm:"uniqueIndex"`
	ProjectID     string `gorm:"uniqueIndex:idx_repositories_project_name"`
	Name          string `gorm:"uniqueIndex:idx_repositories_project_name"`
	URL           string `gorm:"index"`
	DefaultBranch string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Engineer rows are keyed by email.
type Engineer struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Name      string `gorm:"index"`
	AvatarURL string
	Active    bool
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PullRequest is owned by its repository (cascade) and references its
// engineer weakly (SET NULL on engineer deletion).
type PullRequest struct {
	ID           uint        `gorm:"primaryKey"`
	NativeID     int64       `gorm:"uniqueIndex:idx_pull_requests_repo_native"`
	RepositoryID uint        `gorm:"uniqueIndex:idx_pull_requests_repo_native"`
	Repository   *Repository `gorm:"constraint:OnDelete:CASCADE"`
	EngineerID   *uint
	Engineer     *Engineer `gorm:"constraint:OnDelete:SET NULL"`
	Title        string
	Description  string
	Status       string `gorm:"index"`
	SourceRef    string
	TargetRef    string
	URL          string
	OpenedAt     time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Commit uniqueness is scoped to (repository_id, commit_hash) so forks
// sharing history never collide.
type Commit struct {
	ID            uint        `gorm:"primaryKey"`
	CommitHash    string      `gorm:"uniqueIndex:idx_commits_repo_hash"`
	RepositoryID  uint        `gorm:"uniqueIndex:idx_commits_repo_hash"`
	Repository    *Repository `gorm:"constraint:OnDelete:CASCADE"`
	PullRequestID *uint
	PullRequest   *PullRequest `gorm:"constraint:OnDelete:SET NULL"`
	EngineerID    *uint
	Engineer      *Engineer `gorm:"constraint:OnDelete:SET NULL"`
	Message       string
	AuthorName    string
	AuthorEmail   string `gorm:"index"`
	Date          time.Time
	URL           string
	FilesChanged  int
	Additions     int
	Deletions     int
	CreatedAt     time.Time
}

// Review belongs to a pull request or a commit (cascade) and weakly
// references the reviewer.
type Review struct {
	ID            uint `gorm:"primaryKey"`
	Type          string
	Content       string
	Score         *float64
	Suggestions   []string `gorm:"serializer:json"`
	Status        string
	PullRequestID *uint
	PullRequest   *PullRequest `gorm:"constraint:OnDelete:CASCADE"`
	CommitID      *uint
	Commit        *Commit `gorm:"constraint:OnDelete:CASCADE"`
	EngineerID    *uint
	Engineer      *Engineer `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WebhookEvent is the append-only audit row.
type WebhookEvent struct {
	ID          uint   `gorm:"primaryKey"`
	PublicID    string `gorm:"uniqueIndex"`
	Provider    string `gorm:"index"`
	EventType   string `gorm:"index"`
	Payload     []byte
	Processed   bool
	Error       string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// Models returns every model for AutoMigrate.
func Models() []any {
	return []any{
		&Repository{},
		&Engineer{},
		&PullRequest{},
		&Commit{},
		&Review{},
		&WebhookEvent{},
	}
}

func (r *Repository) ToDomain() *domain.Repository {
	return &domain.Repository{
		ID:            r.ID,
		PublicID:      r.PublicID,
		ProjectID:     r.ProjectID,
		Name:          r.Name,
		URL:           r.URL,
		DefaultBranch: r.DefaultBranch,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toGormRepository(r *domain.Repository) *Repository {
	return &Repository{
		ID:            r.ID,
		PublicID:      r.PublicID,
		ProjectID:     r.ProjectID,
		Name:          r.Name,
		URL:           r.URL,
		DefaultBranch: r.DefaultBranch,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (e *Engineer) ToDomain() *domain.Engineer {
	return &domain.Engineer{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		AvatarURL: e.AvatarURL,
		Active:    e.Active,
		JoinedAt:  e.JoinedAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toGormEngineer(e *domain.Engineer) *Engineer {
	return &Engineer{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		AvatarURL: e.AvatarURL,
		Active:    e.Active,
		JoinedAt:  e.JoinedAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (p *PullRequest) ToDomain() *domain.PullRequest {
	return &domain.PullRequest{
		ID:           p.ID,
		NativeID:     p.NativeID,
		RepositoryID: p.RepositoryID,
		EngineerID:   p.EngineerID,
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		SourceRef:    p.SourceRef,
		TargetRef:    p.TargetRef,
		URL:          p.URL,
		OpenedAt:     p.OpenedAt,
		ClosedAt:     p.ClosedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toGormPullRequest(p *domain.PullRequest) *PullRequest {
	return &PullRequest{
		ID:           p.ID,
		NativeID:     p.NativeID,
		RepositoryID: p.RepositoryID,
		EngineerID:   p.EngineerID,
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		SourceRef:    p.SourceRef,
		TargetRef:    p.TargetRef,
		URL:          p.URL,
		OpenedAt:     p.OpenedAt,
		ClosedAt:     p.ClosedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (c *Commit) ToDomain() *domain.Commit {
	return &domain.Commit{
		ID:            c.ID,
		CommitHash:    c.CommitHash,
		RepositoryID:  c.RepositoryID,
		PullRequestID: c.PullRequestID,
		EngineerID:    c.EngineerID,
		Message:       c.Message,
		AuthorName:    c.AuthorName,
		AuthorEmail:   c.AuthorEmail,
		Date:          c.Date,
		URL:           c.URL,
		FilesChanged:  c.FilesChanged,
		Additions:     c.Additions,
		Deletions:     c.Deletions,
		CreatedAt:     c.CreatedAt,
	}
}

func toGormCommit(c *domain.Commit) *Commit {
	return &Commit{
		ID:            c.ID,
		CommitHash:    c.CommitHash,
		RepositoryID:  c.RepositoryID,
		PullRequestID: c.PullRequestID,
		EngineerID:    c.EngineerID,
		Message:       c.Message,
		AuthorName:    c.AuthorName,
		AuthorEmail:   c.AuthorEmail,
		Date:          c.Date,
		URL:           c.URL,
		FilesChanged:  c.FilesChanged,
		Additions:     c.Additions,
		Deletions:     c.Deletions,
		CreatedAt:     c.CreatedAt,
	}
}

func (r *Review) ToDomain() *domain.Review {
	return &domain.Review{
		ID:            r.ID,
		Type:          r.Type,
		Content:       r.Content,
		Score:         r.Score,
		Suggestions:   r.Suggestions,
		Status:        r.Status,
		PullRequestID: r.PullRequestID,
		CommitID:      r.CommitID,
		EngineerID:    r.EngineerID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toGormReview(r *domain.Review) *Review {
	return &Review{
		ID:            r.ID,
		Type:          r.Type,
		Content:       r.Content,
		Score:         r.Score,
		Suggestions:   r.Suggestions,
		Status:        r.Status,
		PullRequestID: r.PullRequestID,
		CommitID:      r.CommitID,
		EngineerID:    r.EngineerID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (w *WebhookEvent) ToDomain() *domain.WebhookEvent {
	return &domain.WebhookEvent{
		ID:          w.ID,
		PublicID:    w.PublicID,
		Provider:    w.Provider,
		EventType:   w.EventType,
		Payload:     w.Payload,
		Processed:   w.Processed,
		Error:       w.Error,
		CreatedAt:   w.CreatedAt,
		ProcessedAt: w.ProcessedAt,
	}
}
