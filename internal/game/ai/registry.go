package ai

import (
	"fmt"
	"sort"
)

// Registry indexes Variants by ID.
//
// Invariant: each variant ID is registered at most once.
type Registry struct {
	variants map[string]*Variant
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]*Variant)}
}

// Register stores v.
//
// Postcondition: returns error on ID collision or an invalid variant.
func (r *Registry) Register(v *Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, exists := r.variants[v.ID]; exists {
		return fmt.Errorf("ai.Registry: variant %q already registered", v.ID)
	}
	r.variants[v.ID] = v
	return nil
}

// VariantFor returns the Variant for id, or false if not registered.
func (r *Registry) VariantFor(id string) (*Variant, bool) {
	v, ok := r.variants[id]
	return v, ok
}

// IDs returns all registered variant IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.variants))
	for id := range r.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
