// Package article models a stockroom of tracked materials. Each article keeps
// its current amount, its full capacity, and a stock health status derived
// from the two. The material type doubles as the business key: no two
// articles may share a normalized material name.
package article

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Status classifies how depleted an article is relative to its capacity.
type Status string

const (
	StatusFull     Status = "Full"
	StatusGood     Status = "Good"
	StatusMedium   Status = "Medium"
	StatusCritical Status = "Critical"
	StatusEmpty    Status = "Empty"
)

func ParseStatus(v string) (Status, error) {
	switch v {
	case string(StatusFull):
		return StatusFull, nil
	case string(StatusGood):
		return StatusGood, nil
	case string(StatusMedium):
		return StatusMedium, nil
	case string(StatusCritical):
		return StatusCritical, nil
	case string(StatusEmpty):
		return StatusEmpty, nil
	default:
		return "", errors.New("invalid status")
	}
}

// severity orders statuses from healthiest to most depleted. Listings sort
// on it descending so the articles needing attention come first.
func (s Status) severity() int {
	switch s {
	case StatusFull:
		return 0
	case StatusGood:
		return 1
	case StatusMedium:
		return 2
	case StatusCritical:
		return 3
	case StatusEmpty:
		return 4
	default:
		return -1
	}
}

// Unit is the measurement unit an article is stocked in.
type Unit string

const (
	UnitPiece    Unit = "piece"
	UnitBox      Unit = "box"
	UnitKilogram Unit = "kg"
	UnitLiter    Unit = "l"
	UnitMeter    Unit = "m"
	UnitPack     Unit = "pack"
)

func ParseUnit(v string) (Unit, error) {
	switch v {
	case string(UnitPiece):
		return UnitPiece, nil
	case string(UnitBox):
		return UnitBox, nil
	case string(UnitKilogram):
		return UnitKilogram, nil
	case string(UnitLiter):
		return UnitLiter, nil
	case string(UnitMeter):
		return UnitMeter, nil
	case string(UnitPack):
		return UnitPack, nil
	default:
		return "", errors.New("invalid unit")
	}
}

// Article is an entity. A tracked inventory line item.
type Article struct {
	ID           string    `json:"id"`
	MaterialType string    `json:"materialType"`
	Amount       int       `json:"amount"`
	FullAmount   int       `json:"fullAmount"`
	Unit         Unit      `json:"unit"`
	IsOrdered    bool      `json:"isOrdered"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ArticleRequest is a value object. The caller-supplied fields for creating
// or updating an article. Status is never part of it, the service always
// derives status itself.
type ArticleRequest struct {
	MaterialType string `json:"materialType"`
	Amount       int    `json:"amount"`
	FullAmount   int    `json:"fullAmount"`
	Unit         Unit   `json:"unit"`
	IsOrdered    bool   `json:"isOrdered"`
}

// OrderReceipt is a value object. The outcome of a restock order: when it
// was placed and the article as it looks afterwards.
type OrderReceipt struct {
	OrderedAt time.Time `json:"orderTimestamp"`
	Article   Article   `json:"article"`
}

// fallbackCapacity stands in for the capacity during status math when an
// article has no stated capacity, keeping the ratio well defined.
const fallbackCapacity = 250

// StatusFor derives the stock health status from the amount on hand and the
// full capacity. Bands are inclusive on their lower bound.
func StatusFor(amount, fullAmount int) Status {
	safeMax := fullAmount
	if safeMax <= 0 {
		safeMax = fallbackCapacity
	}

	if amount >= safeMax {
		return StatusFull
	}
	if amount <= 0 {
		return StatusEmpty
	}

	ratio := float64(amount) / float64(safeMax)
	switch {
	case ratio >= 0.7:
		return StatusGood
	case ratio >= 0.4:
		return StatusMedium
	default:
		return StatusCritical
	}
}

// NormalizeMaterialType canonicalizes a human-entered material name: trimmed,
// first rune upper case, remainder lower case. The normalized form is both
// the display value and the uniqueness key. Whitespace-only input normalizes
// to the empty string, which callers treat as missing.
func NormalizeMaterialType(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(trimmed)
	if size == len(trimmed) {
		return strings.ToUpper(trimmed)
	}

	return strings.ToUpper(string(r)) + strings.ToLower(trimmed[size:])
}
