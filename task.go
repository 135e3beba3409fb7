package openrealm

import "github.com/google/uuid"

// Task is a completable async primitive, polled once per frame rather
// than awaited across goroutines. Subsystems that need to wait on
// another subsystem's result (a GLTF download finishing, a texture
// decoding) hold a *Task[T] and check [Task.Done] during their own
// per-frame update; there is no cross-awaiting between subsystems.
type Task[T any] struct {
	// ID correlates a task across log lines without leaking the pointer
	// itself; assigned once at creation and never reused.
	ID uuid.UUID

	done  bool
	value T
	err   error
}

// NewTask returns a pending task with a fresh ID.
func NewTask[T any]() *Task[T] {
	return &Task[T]{ID: uuid.New()}
}

// Resolve marks the task complete with a value. Calling Resolve or
// [Task.Reject] on an already-complete task panics: that indicates a
// programmer error, not a data-plane failure.
func (t *Task[T]) Resolve(v T) {
	if t.done {
		panic("openrealm: Task resolved twice")
	}
	t.value = v
	t.done = true
}

// Reject marks the task complete with an error.
func (t *Task[T]) Reject(err error) {
	if t.done {
		panic("openrealm: Task resolved twice")
	}
	t.err = err
	t.done = true
}

// Done reports whether the task has completed (successfully or not).
func (t *Task[T]) Done() bool { return t.done }

// Result returns the task's value and error. Calling Result before Done
// reports true returns the zero value and a nil error.
func (t *Task[T]) Result() (T, error) {
	return t.value, t.err
}

// MapTask returns a new task holding f applied to t's value (or t's
// error) if t has already completed. If t is still pending, the returned
// task stays pending and is not completed when t later completes. It
// does not spawn a goroutine.
func MapTask[T, U any](t *Task[T], f func(T) U) *Task[U] {
	out := NewTask[U]()
	if t.Done() {
		v, err := t.Result()
		if err != nil {
			out.Reject(err)
		} else {
			out.Resolve(f(v))
		}
	}
	return out
}
