// Package listview composes search, categorical filters and ordering into the
// list views shown by the dashboards.
package listview

import (
	"fmt"
	"sort"
	"strings"
)

// All is the filter value that disables a categorical filter.
const All = "all"

// Query selects and narrows a list. Empty or "all" filter values are ignored.
type Query struct {
	Search  string
	Filters map[string]string
}

// Pipeline is a reusable list view over records of type T.
type Pipeline[T any] struct {
	search  []func(T) string
	filters map[string]func(T) string
	less    func(a, b T) bool
}

// New builds a pipeline ordered by less.
func New[T any](less func(a, b T) bool) *Pipeline[T] {
	return &Pipeline[T]{filters: make(map[string]func(T) string), less: less}
}

// SearchOn adds fields matched by Query.Search.
func (p *Pipeline[T]) SearchOn(fields ...func(T) string) *Pipeline[T] {
	p.search = append(p.search, fields...)
	return p
}

// FilterOn registers a categorical filter under name.
func (p *Pipeline[T]) FilterOn(name string, field func(T) string) *Pipeline[T] {
	p.filters[name] = field
	return p
}

// Filters lists the registered filter names.
func (p *Pipeline[T]) Filters() []string {
	names := make([]string, 0, len(p.filters))
	for name := range p.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns the matching records in order. items is not modified.
func (p *Pipeline[T]) Apply(items []T, q Query) ([]T, error) {
	type active struct {
		field func(T) string
		value string
	}
	var checks []active
	for name, value := range q.Filters {
		if value == "" || strings.EqualFold(value, All) {
			continue
		}
		field, ok := p.filters[name]
		if !ok {
			return nil, fmt.Errorf("unknown filter %q (known: %s)", name, strings.Join(p.Filters(), ", "))
		}
		checks = append(checks, active{field: field, value: value})
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !p.matches(item, needle) {
			continue
		}
		keep := true
		for _, c := range checks {
			if !strings.EqualFold(c.field(item), c.value) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	if p.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return p.less(out[i], out[j]) })
	}
	return out, nil
}

func (p *Pipeline[T]) matches(item T, needle string) bool {
	for _, field := range p.search {
		if strings.Contains(strings.ToLower(field(item)), needle) {
			return true
		}
	}
	return false
}
