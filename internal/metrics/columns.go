package metrics

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports the roles that could not be resolved
// against a header row. No partial aggregation happens when it is
// returned; the caller surfaces the unresolved role names to the user.
type MissingColumnsError struct {
	Roles []Role
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(names, ", "))
}

// RoleNames returns the unresolved role names as plain strings.
func (e *MissingColumnsError) RoleNames() []string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return names
}

// normalizeHeader folds a header cell for comparison: trim, lowercase,
// and remove all internal whitespace.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "")
}

// ResolveColumns maps each role to the first header index whose
// normalized text equals the role's normalized expected header.
// Matching is exact after folding, not fuzzy. All roles are required;
// if any is unmatched the whole resolution fails with a
// *MissingColumnsError naming every unresolved role.
func ResolveColumns(header []any, specs []RoleSpec) (ColumnMap, error) {
	folded := make([]string, len(header))
	for i, cell := range header {
		if s, ok := cell.(string); ok {
			folded[i] = normalizeHeader(s)
		}
	}

	cols := make(ColumnMap, len(specs))
	var missing []Role
	for _, spec := range specs {
		want := normalizeHeader(spec.Header)
		idx := -1
		for i, have := range folded {
			if have != "" && have == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = append(missing, spec.Role)
			continue
		}
		cols[spec.Role] = idx
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Roles: missing}
	}
	return cols, nil
}
