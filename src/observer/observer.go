package observer

// Observer receives the subject's new state after every mutation.
type Observer[T any] interface {
	SubjectUpdated(state T)
}

// Subject pushes state changes to attached observers synchronously.
// Observer keys are unique per subject; attaching an existing key
// replaces the previous observer.
type Subject[T any] interface {
	AttachObserver(key string, obs Observer[T])
	// DetachObserver removes the observer under key, reporting whether
	// an entry existed.
	DetachObserver(key string) bool
}

// Func adapts a plain function to the Observer interface.
type Func[T any] func(state T)

// SubjectUpdated invokes the wrapped function.
func (f Func[T]) SubjectUpdated(state T) {
	f(state)
}
