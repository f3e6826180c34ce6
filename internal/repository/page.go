package repository

// Pagination defaults.
const (
	DefaultPage          = 1
	DefaultLimit         = 20
	DefaultSortBy        = "created_at"
	DefaultSortDirection = "desc"
)

// PagingQuery carries pagination parameters from the HTTP layer.
type PagingQuery struct {
	Page      int
	Limit     int
	Sort      string
	Direction string
}

// PagingInfo describes the page returned.
type PagingInfo struct {
	TotalCount  int64 `json:"total_count"`
	Count       int   `json:"count"`
	Page        int   `json:"page"`
	HasNextPage bool  `json:"has_next_page"`
}

func getPaginationInfo(query PagingQuery) (PagingQuery, int) {
	if query.Page == 0 {
		query.Page = DefaultPage
	}
	if query.Limit == 0 {
		query.Limit = DefaultLimit
	}
	if query.Sort == "" {
		query.Sort = DefaultSortBy
	}
	if query.Direction != "asc" {
		query.Direction = DefaultSortDirection
	}

	var offset int
	if query.Page > 1 {
		offset = query.Limit * (query.Page - 1)
	}
	return query, offset
}

func getPagingInfo(query PagingQuery, count int64) PagingInfo {
	return PagingInfo{
		TotalCount:  count,
		Page:        query.Page,
		HasNextPage: int64(query.Page*query.Limit) < count,
	}
}
