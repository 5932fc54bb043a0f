package service

import (
	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/media"
	"github.com/vidtube/vidtube/internal/store"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	ProfileService ProfileService
}

func NewServices(storages *store.Storages, uploader media.Uploader, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		AccountService: NewAccountService(storages.UserRepository, uploader, cfg.App, logger),
		ProfileService: NewProfileService(storages.UserRepository, storages.SubscriptionRepository, storages.VideoRepository, logger),
	}
}
