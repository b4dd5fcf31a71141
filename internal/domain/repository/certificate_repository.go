package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/domain/model"
)

type CertificateRepository interface {
	Create(ctx context.Context, certificate *model.Certificate) error
	FindByUserID(ctx context.Context, userID string) (*model.Certificate, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type pgCertificateRepository struct {
	db *sql.DB
}

func NewPgCertificateRepository(db *sql.DB) CertificateRepository {
	return &pgCertificateRepository{db: db}
}

func (r *pgCertificateRepository) Create(ctx context.Context, certificate *model.Certificate) error {
	query := `INSERT INTO certificates (id, user_id, file_path) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, certificate.ID, certificate.UserID, certificate.FilePath)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("certificate already issued for user: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCertificateRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCertificateRepository) FindByUserID(ctx context.Context, userID string) (*model.Certificate, error) {
	query := `SELECT id, user_id, file_path, issued_at FROM certificates WHERE user_id = $1`
	certificate := &model.Certificate{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&certificate.ID, &certificate.UserID, &certificate.FilePath, &certificate.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCertificateRepository.FindByUserID: %w", err)
	}
	return certificate, nil
}

func (r *pgCertificateRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM certificates WHERE user_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgCertificateRepository.ExistsForUser: %w", err)
	}
	return exists, nil
}
