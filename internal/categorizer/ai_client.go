package categorizer

import (
	"context"
)

// AIClient asks an external model to name the category of a merchant.
// The reply is free text; AIStrategy validates it against the enum.
type AIClient interface {
	Categorize(ctx context.Context, merchant string) (string, error)
}

// AIClientFunc adapts a function to AIClient.
type AIClientFunc func(ctx context.Context, merchant string) (string, error)

func (f AIClientFunc) Categorize(ctx context.Context, merchant string) (string, error) {
	return f(ctx, merchant)
}
