package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"
	"github.com/sajari/fuzzy"
)

// ErrNotFound reports a lookup for a name with no registered entity.
var ErrNotFound = errors.New("registry: entity not found")

// ErrMutationConflict reports two overlapping exclusive acquisitions of
// the same entity. This is a programming error in the caller; the
// second acquisition fails fast instead of aliasing a mutable view.
var ErrMutationConflict = errors.New("registry: entity already exclusively acquired")

type slot[T any] struct {
	value T
	busy  bool
}

// Registry is an arena of named entities. Entities are added once and
// shared; mutation happens only through scoped exclusive acquisitions
// issued by WithExclusive.
type Registry[T any] struct {
	mu     sync.Mutex
	slots  map[string]*slot[T]
	model  *fuzzy.Model
	logger *zerolog.Logger
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	return &Registry[T]{
		slots: map[string]*slot[T]{},
		model: model,
	}
}

// SetLogger installs a structured logger for lookup diagnostics.
func (r *Registry[T]) SetLogger(l zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = &l
}

// Add registers an entity under name, replacing any previous entry.
func (r *Registry[T]) Add(name string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[name] = &slot[T]{value: value}
	r.model.TrainWord(strings.ToLower(name))
}

// Contains reports whether a name is registered.
func (r *Registry[T]) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slots[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.slots))
	for name := range r.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithExclusive runs fn with exclusive mutable access to the named
// entity. The acquisition is scoped to the call and released on every
// exit path. A missing name yields ErrNotFound. A nested acquisition of
// the same entity yields ErrMutationConflict; it never blocks waiting
// for release, because overlap within one synchronous call chain could
// only ever deadlock or alias.
func (r *Registry[T]) WithExclusive(name string, fn func(value T) error) error {
	r.mu.Lock()
	s, ok := r.slots[name]
	if !ok {
		r.mu.Unlock()
		if r.logger != nil {
			r.logger.Debug().Str("entity", name).Msg("exclusive acquisition missed")
		}
		return ErrNotFound
	}
	if s.busy {
		r.mu.Unlock()
		if r.logger != nil {
			r.logger.Error().Str("entity", name).Msg("overlapping exclusive acquisition")
		}
		return ErrMutationConflict
	}
	s.busy = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		s.busy = false
		r.mu.Unlock()
	}()
	return fn(s.value)
}

// Suggest returns up to limit registered names closest to the given
// one, nearest first. It is a diagnostic aid for failed lookups; an
// empty result means nothing was within editing distance.
func (r *Registry[T]) Suggest(name string, limit int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || len(r.slots) == 0 {
		return nil
	}
	lower := strings.ToLower(name)
	seen := map[string]bool{}
	var candidates []string
	for _, c := range r.model.Suggestions(lower, false) {
		if !seen[c] {
			seen[c] = true
			candidates = append(candidates, c)
		}
	}
	// The model works on lowercase tokens; map back to registered
	// names and keep anything within a small editing distance even if
	// the model missed it.
	var matches []string
	for registered := range r.slots {
		rl := strings.ToLower(registered)
		if seen[rl] || levenshtein.ComputeDistance(lower, rl) <= 2 {
			matches = append(matches, registered)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		di := levenshtein.ComputeDistance(lower, strings.ToLower(matches[i]))
		dj := levenshtein.ComputeDistance(lower, strings.ToLower(matches[j]))
		if di == dj {
			return matches[i] < matches[j]
		}
		return di < dj
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
