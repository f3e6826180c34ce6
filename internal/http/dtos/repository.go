package dtos

import (
	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/repository"
)

// MultiCommitsResponse is a page of commits for one repository.
type MultiCommitsResponse struct {
	Commits  []domain.Commit       `json:"commits"`
	PageInfo repository.PagingInfo `json:"page_info"`
}
