package property

import (
	"fmt"
	"strings"
)

// Filter holds the optional search criteria. Nil fields impose no constraint;
// the set fields are combined with AND. Price and size bounds are inclusive.
type Filter struct {
	Address  *string
	MinPrice *float64
	MaxPrice *float64
	MinSize  *float64
	MaxSize  *float64
}

// condition is one independent predicate, usable both as a SQL fragment and
// as an in-memory check. expr contains a single %s for the bind marker.
type condition struct {
	expr  string
	arg   any
	match func(Property) bool
}

const likeEscape = `\`

func (f Filter) conditions() []condition {
	var conds []condition

	if f.Address != nil && strings.TrimSpace(*f.Address) != "" {
		needle := foldAddress(*f.Address)
		conds = append(conds, condition{
			expr: "address_search LIKE %s ESCAPE '" + likeEscape + "'",
			arg:  "%" + escapeLike(needle) + "%",
			match: func(p Property) bool {
				return strings.Contains(foldAddress(p.Address), needle)
			},
		})
	}
	if f.MinPrice != nil {
		v := *f.MinPrice
		conds = append(conds, condition{expr: "price >= %s", arg: v, match: func(p Property) bool { return p.Price >= v }})
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		conds = append(conds, condition{expr: "price <= %s", arg: v, match: func(p Property) bool { return p.Price <= v }})
	}
	if f.MinSize != nil {
		v := *f.MinSize
		conds = append(conds, condition{expr: "size >= %s", arg: v, match: func(p Property) bool { return p.Size >= v }})
	}
	if f.MaxSize != nil {
		v := *f.MaxSize
		conds = append(conds, condition{expr: "size <= %s", arg: v, match: func(p Property) bool { return p.Size <= v }})
	}
	return conds
}

// Match reports whether p satisfies every criterion of f.
func (f Filter) Match(p Property) bool {
	for _, c := range f.conditions() {
		if !c.match(p) {
			return false
		}
	}
	return true
}

// where renders f as a parameterized WHERE clause (empty when f has no
// criteria). placeholder returns the bind marker for the n-th argument,
// counting from 1.
func (f Filter) where(placeholder func(n int) string) (string, []any) {
	conds := f.conditions()
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, len(conds))
	args := make([]any, len(conds))
	for i, c := range conds {
		parts[i] = fmt.Sprintf(c.expr, placeholder(i+1))
		args[i] = c.arg
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// foldAddress is the case folding shared by the address_search column and
// the in-memory predicate. Database LOWER functions are not used because
// SQLite and C-locale Postgres only fold ASCII.
func foldAddress(s string) string {
	return strings.ToLower(s)
}

// foldedAddress returns the address_search value for a patch, nil when the
// address is left unchanged.
func (patch Patch) foldedAddress() *string {
	if patch.Address == nil {
		return nil
	}
	folded := foldAddress(*patch.Address)
	return &folded
}

func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
