package domain

import (
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/pkg/errcodes"
)

// Period is a reporting window. Two token families are accepted — the
// duration style ("7d", "30d", "90d", "1y") and the named style
// ("WEEKLY", "MONTHLY", "QUARTERLY", "YEARLY") — and unified here so
// every endpoint shares one vocabulary.
type Period struct {
	Token string
	Days  int
}

var periodTokens = map[string]Period{
	"7d":        {Token: "7d", Days: 7},
	"weekly":    {Token: "7d", Days: 7},
	"30d":       {Token: "30d", Days: 30},
	"monthly":   {Token: "30d", Days: 30},
	"90d":       {Token: "90d", Days: 90},
	"quarterly": {Token: "90d", Days: 90},
	"1y":        {Token: "1y", Days: 365},
	"yearly":    {Token: "1y", Days: 365},
}

// DefaultPeriod is used when no period parameter is supplied.
var DefaultPeriod = Period{Token: "30d", Days: 30}

// ParsePeriod resolves a period token from either vocabulary,
// case-insensitively. An empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p, ok := periodTokens[strings.ToLower(s)]
	if !ok {
		return Period{}, errcodes.ErrInvalidPeriod
	}
	return p, nil
}

// Start returns the beginning of the window ending at now.
func (p Period) Start(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.Days)
}
