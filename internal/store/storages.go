package store

import "github.com/vidtube/vidtube/internal/logger"

// Storages bundles all repository implementations behind their interfaces.
// It is the single value handed to the service layer at wiring time.
type Storages struct {
	UserRepository         UserRepository
	SubscriptionRepository SubscriptionRepository
	VideoRepository        VideoRepository
}

// NewStorages constructs all repositories over one shared database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		SubscriptionRepository: NewSubscriptionRepository(db, log),
		VideoRepository:        NewVideoRepository(db, log),
	}
}
