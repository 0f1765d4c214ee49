package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresService struct {
	pool   *pgxpool.Pool
	pepper string
}

var _ Service = (*PostgresService)(nil)

func NewPostgresService(pool *pgxpool.Pool, pepper string) *PostgresService {
	return &PostgresService{pool: pool, pepper: pepper}
}

func (s *PostgresService) ValidateAPIKey(ctx context.Context, apiKey string) (*ValidatedUser, error) {
	keyHash := s.hashSecret(apiKey)

	var (
		keyID   int64
		userID  string
		revoked bool
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, revoked
		FROM api_keys
		WHERE key_hash = $1
	`, keyHash).Scan(&keyID, &userID, &revoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting API key by hash: %w", err)
	}

	if revoked {
		return nil, ErrAPIKeyRevoked
	}

	return &ValidatedUser{
		UserID:   userID,
		APIKeyID: keyID,
	}, nil
}

func (s *PostgresService) GetOrCreateUser(ctx context.Context, userID string) (string, error) {
	var existing string
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&existing)
	if err == nil {
		return "", nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("getting user: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `INSERT INTO users (id) VALUES ($1)`, userID); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return "", err
	}

	keyHash := s.hashSecret(apiKey)
	_, err = s.pool.Exec(ctx, `
		INSERT INTO api_keys (user_id, key_hash, name)
		VALUES ($1, $2, 'default')
	`, userID, keyHash)
	if err != nil {
		return "", fmt.Errorf("creating API key: %w", err)
	}

	return apiKey, nil
}

func (s *PostgresService) UpdateAPIKeyLastUsed(ctx context.Context, apiKeyID int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE api_keys SET last_used_at = now() WHERE id = $1
	`, apiKeyID)
	if err != nil {
		return fmt.Errorf("updating API key last used: %w", err)
	}
	return nil
}

func (s *PostgresService) hashSecret(secret string) string {
	h := sha256.Sum256([]byte(s.pepper + secret))
	return hex.EncodeToString(h[:])
}

const (
	apiKeyPrefix = "vyr_"
	apiKeyLength = 32
)

func generateAPIKey() (string, error) {
	b := make([]byte, apiKeyLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
