// Package vctx implements the ambient, scoped, read-only ValidationContext
// of spec section 4.7.
//
// The reference spec prefers a task-local scoped value so a constraint's
// Evaluate signature never has to change when new ambient fields are
// needed. Go has no such primitive (goroutines carry no implicit state),
// so dqcheck takes the fallback the spec explicitly permits: the context is
// threaded as the first argument of every Evaluate call, carried inside the
// standard context.Context that already flows through every call for
// cancellation. This keeps the "per logical task, not global" and "visible
// only within its own scope" guarantees for free — context.Context values
// are immutable, derived per call tree, and never observable from a
// sibling goroutine unless explicitly passed to it.
package vctx

import "context"

type key struct{}

// ValidationContext carries the target table name from the orchestrator
// to the constraint evaluator.
type ValidationContext struct {
	TableName string
}

// Default is returned by FromContext when no scope has been established.
var Default = ValidationContext{TableName: "data"}

// With returns a derived context carrying vc as the ambient
// ValidationContext. The scope is confined to ctx and whatever is derived
// from it — it is never visible to a goroutine that does not receive this
// ctx explicitly.
func With(ctx context.Context, vc ValidationContext) context.Context {
	return context.WithValue(ctx, key{}, vc)
}

// FromContext reads the ambient ValidationContext, or Default if none was
// established.
func FromContext(ctx context.Context) ValidationContext {
	if vc, ok := ctx.Value(key{}).(ValidationContext); ok {
		return vc
	}
	return Default
}
