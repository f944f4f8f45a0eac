package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"
)

// HandlerFunc applies one decoded payload using only the repositories
// reachable from tx.
type HandlerFunc[T any] func(ctx context.Context, tx shared.Tx, payload T) error

// Payloads implementing Validator are checked at enqueue time.
type Validator interface {
	Validate() error
}

type handler interface {
	validate(raw json.RawMessage) error
	apply(ctx context.Context, tx shared.Tx, raw json.RawMessage) error
}

type typedHandler[T any] struct {
	fn HandlerFunc[T]
}

func (h typedHandler[T]) decode(raw json.RawMessage) (T, error) {
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, errs.Mark(errs.Wrap(err, "failed to decode payload"), errs.ErrValidation)
	}
	if v, ok := any(&payload).(Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, errs.Mark(errs.Wrap(err, "invalid payload"), errs.ErrValidation)
		}
	}
	return payload, nil
}

func (h typedHandler[T]) validate(raw json.RawMessage) error {
	_, err := h.decode(raw)
	return err
}

func (h typedHandler[T]) apply(ctx context.Context, tx shared.Tx, raw json.RawMessage) error {
	payload, err := h.decode(raw)
	if err != nil {
		return err
	}
	return h.fn(ctx, tx, payload)
}

// Registry maps a job type to its apply handler.
type Registry struct {
	handlers map[job.Type]handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[job.Type]handler)}
}

// Register binds fn to t. Registering an unknown or already bound type panics.
func Register[T any](r *Registry, t job.Type, fn HandlerFunc[T]) {
	if !t.IsValid() {
		panic(fmt.Sprintf("queue: cannot register unknown job type %q", t))
	}
	if _, ok := r.handlers[t]; ok {
		panic(fmt.Sprintf("queue: job type %q registered twice", t))
	}
	r.handlers[t] = typedHandler[T]{fn: fn}
}

func (r *Registry) Types() []job.Type {
	types := make([]job.Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// MustValidate panics unless every declared job type has a handler.
func (r *Registry) MustValidate() {
	for _, t := range job.AllTypes() {
		if _, ok := r.handlers[t]; !ok {
			panic(fmt.Sprintf("queue: no handler registered for job type %q", t))
		}
	}
}

// Validate checks that t is registered and payload decodes into its type.
func (r *Registry) Validate(t job.Type, payload json.RawMessage) error {
	h, ok := r.handlers[t]
	if !ok {
		return errs.Mark(errs.Wrapf(job.ErrInvalidType, "type %q", t), errs.ErrValidation)
	}
	return h.validate(payload)
}

func (r *Registry) Apply(ctx context.Context, tx shared.Tx, j *job.Job) error {
	h, ok := r.handlers[j.Type()]
	if !ok {
		return errs.Mark(errs.Wrapf(job.ErrInvalidType, "no handler for type %q", j.Type()), errs.ErrValidation)
	}
	return h.apply(ctx, tx, j.Payload())
}
