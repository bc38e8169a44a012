package ports

import "context"

// TxRunner executes fn inside one atomic unit of the backing store. The
// moderation flow uses it to make an account mutation and its audit record
// durable together or not at all.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
