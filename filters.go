package identity

import "github.com/uptrace/bun"

// Filter expands into an explicit list of select criteria the repository
// combines with AND semantics.
type Filter interface {
	Criteria() []SelectCriteria
}

// UserFilter carries optional narrowing conditions for user queries. Absent
// fields impose no constraint; the empty filter matches every user.
type UserFilter struct {
	Name       string `query:"name" json:"name,omitempty"`
	Email      string `query:"email" json:"email,omitempty"`
	Subscribed *bool  `query:"subscribed" json:"subscribed,omitempty"`
}

var _ Filter = (*UserFilter)(nil)

// Criteria builds one condition per present field.
func (f *UserFilter) Criteria() []SelectCriteria {
	if f == nil {
		return nil
	}

	var criteria []SelectCriteria

	if f.Name != "" {
		criteria = append(criteria, UserByName(f.Name))
	}

	if f.Email != "" {
		email := f.Email
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.email = ?", email)
		})
	}

	if f.Subscribed != nil {
		subscribed := *f.Subscribed
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_subscribed = ?", subscribed)
		})
	}

	return criteria
}
