package usecase

import "context"

// Invalidator is told about every committed write so derived data (the API
// response cache) can be dropped.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context) {}
