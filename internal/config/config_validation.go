// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VidTube Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessTokenSecret == "" || cfg.App.RefreshTokenSecret == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.AccessTokenSecret == cfg.App.RefreshTokenSecret {
		// access and refresh tokens must not be interchangeable
		return ErrInvalidAppConfigs
	}
	if cfg.App.AccessTokenDuration == 0 || cfg.App.RefreshTokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Media.BaseURL == "" || cfg.Media.APIKey == "" {
		return ErrInvalidMediaConfigs
	}

	return nil
}
