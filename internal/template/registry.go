package template

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Registry is an ordered, name-unique set of templates. It is built once
// and only read afterwards.
type Registry struct {
	templates []Template
	index     map[string]int
}

// NewRegistry validates templates and indexes them by name.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{
		templates: make([]Template, 0, len(templates)),
		index:     make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[t.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateTemplate, "%s", t.Name)
		}
		r.index[t.Name] = len(r.templates)
		r.templates = append(r.templates, t)
	}
	return r, nil
}

// Builtin returns the registry of built-in templates.
func Builtin() *Registry {
	return lo.Must(NewRegistry(catalogue...))
}

// Lookup returns the template called name.
func (r *Registry) Lookup(name string) (Template, error) {
	i, ok := r.index[name]
	if !ok {
		return Template{}, errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	return r.templates[i], nil
}

// Names lists template names in registry order.
func (r *Registry) Names() []string {
	return lo.Map(r.templates, func(t Template, _ int) string { return t.Name })
}

// Extend returns a new registry with extra templates added. An extra
// template whose name is already registered replaces the existing one in
// place; the others are appended in order.
func (r *Registry) Extend(extra []Template) (*Registry, error) {
	merged := make([]Template, len(r.templates), len(r.templates)+len(extra))
	copy(merged, r.templates)
	pos := make(map[string]int, len(r.index))
	for name, i := range r.index {
		pos[name] = i
	}
	for _, t := range extra {
		if i, ok := pos[t.Name]; ok {
			merged[i] = t
			continue
		}
		pos[t.Name] = len(merged)
		merged = append(merged, t)
	}
	return NewRegistry(merged...)
}
