package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lessonforge-backend/internal/auth"
	"github.com/heartmarshall/lessonforge-backend/internal/config"
)

// IssueToken signs an access token for userID with the configured secret.
// A nil userID gets a fresh random id.
func IssueToken(configPath string, userID uuid.UUID) (uuid.UUID, string, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return uuid.Nil, "", err
	}
	if userID == uuid.Nil {
		userID = uuid.New()
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL).
		GenerateAccessToken(userID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("issue token: %w", err)
	}
	return userID, token, nil
}
