// Package feed implements filtering and ordering of community post collections.
package feed

import (
	"sort"
	"strings"

	"sensei/internal/models"
)

// Direction selects ascending or descending order for a sort field.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "ascending"
	DirectionDesc Direction = "descending"
)

// ParseDirection maps a query-string value onto a Direction. Unrecognized
// values behave as "no preference" so that a malformed query never fails
// the whole feed request.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return DirectionAsc
	case "descending", "desc":
		return DirectionDesc
	default:
		return DirectionNone
	}
}

// Criteria describes how a feed request wants posts filtered and ordered.
// Filters combine with AND; sort directions compete by fixed precedence.
type Criteria struct {
	Keyword   string
	Category  string
	Likes     Direction
	Dislikes  Direction
	CreatedAt Direction
	UpdatedAt Direction
}

// sortField returns the single field that orders the result, honoring the
// fixed precedence likes, dislikes, created, updated. The first field with
// a direction wins and the rest are ignored.
func (c Criteria) sortField() (string, Direction) {
	switch {
	case c.Likes != DirectionNone:
		return "likes", c.Likes
	case c.Dislikes != DirectionNone:
		return "dislikes", c.Dislikes
	case c.CreatedAt != DirectionNone:
		return "created", c.CreatedAt
	case c.UpdatedAt != DirectionNone:
		return "updated", c.UpdatedAt
	default:
		return "", DirectionNone
	}
}

func (c Criteria) matches(p models.Post) bool {
	if c.Keyword != "" {
		kw := strings.ToLower(c.Keyword)
		title := strings.ToLower(p.Title)
		author := strings.ToLower(p.User.DisplayName)
		if !strings.Contains(title, kw) && !strings.Contains(author, kw) {
			return false
		}
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	return true
}

// Apply filters and orders posts according to the criteria. The input slice
// is never mutated; a fresh slice is returned. With no sort direction set
// the relative order of the input is preserved.
func Apply(posts []models.Post, c Criteria) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if c.matches(p) {
			out = append(out, p)
		}
	}

	field, dir := c.sortField()
	if dir == DirectionNone {
		return out
	}

	less := func(a, b models.Post) bool {
		switch field {
		case "likes":
			return a.LikesCount < b.LikesCount
		case "dislikes":
			return a.DislikesCount < b.DislikesCount
		case "created":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated":
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return false
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == DirectionDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	return out
}
