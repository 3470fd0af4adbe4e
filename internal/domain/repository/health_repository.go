package repository

import "context"

// HealthRepository checks that the database answers queries.
type HealthRepository interface {
	Ping(ctx context.Context) error
}
