package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"hackfest_backend/internal/common"
	"hackfest_backend/internal/common/security"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/domain/repository"

	"github.com/google/uuid"
)

// ImportService creates user accounts in bulk from a CSV with columns
// username, password, email, role. Bad rows are reported and skipped; the
// rows that pass go in as one all-or-nothing transaction.
type ImportService struct {
	userRepo repository.UserRepository
	db       *sql.DB
}

func NewImportService(userRepo repository.UserRepository, db *sql.DB) *ImportService {
	return &ImportService{userRepo: userRepo, db: db}
}

type ImportRow struct {
	Username string
	Password string
	Email    string
	Role     string
}

type ImportResult struct {
	Created int
	Skipped int
	Reports []string
}

// ParseCSV reads the header and rows, validating each. Invalid rows come back
// as report lines, not errors.
func ParseCSV(r io.Reader) ([]ImportRow, []string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(strings.TrimPrefix(name, "\uFEFF")))] = i
	}
	for _, col := range []string{"username", "password", "email", "role"} {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("CSV is missing required column %q: %w", col, common.ErrValidation)
		}
	}

	var rows []ImportRow
	var reports []string
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			reports = append(reports, fmt.Sprintf("line %d: malformed row, skipping: %v", line, err))
			continue
		}

		row := ImportRow{
			Username: strings.TrimSpace(record[index["username"]]),
			Password: record[index["password"]],
			Email:    strings.TrimSpace(record[index["email"]]),
			Role:     strings.TrimSpace(strings.ToLower(record[index["role"]])),
		}
		if row.Username == "" || row.Password == "" || row.Email == "" || row.Role == "" {
			reports = append(reports, fmt.Sprintf("line %d: missing data, skipping", line))
			continue
		}
		if !model.ValidRole(row.Role) {
			reports = append(reports, fmt.Sprintf("line %d: unknown role %q, skipping", line, row.Role))
			continue
		}
		rows = append(rows, row)
	}
	return rows, reports, nil
}

// BulkCreate inserts the given rows inside a single transaction. Rows whose
// username or email already exists, in the database or earlier in the same
// batch, are skipped without failing the run. The pending inserts are not
// visible to lookups on the pool connection, so batch duplicates are tracked
// here instead of re-queried.
func (s *ImportService) BulkCreate(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seenUsernames := make(map[string]struct{}, len(rows))
	seenEmails := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seenUsernames[row.Username]; dup {
			result.Skipped++
			result.Reports = append(result.Reports, fmt.Sprintf("user %q appears more than once, skipping", row.Username))
			continue
		}
		if _, dup := seenEmails[row.Email]; dup {
			result.Skipped++
			result.Reports = append(result.Reports, fmt.Sprintf("email %q appears more than once, skipping", row.Email))
			continue
		}

		if _, err := s.userRepo.FindByUsername(ctx, row.Username); err == nil {
			result.Skipped++
			result.Reports = append(result.Reports, fmt.Sprintf("user %q already exists, skipping", row.Username))
			continue
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		if _, err := s.userRepo.FindByEmail(ctx, row.Email); err == nil {
			result.Skipped++
			result.Reports = append(result.Reports, fmt.Sprintf("email %q already exists, skipping", row.Email))
			continue
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}

		hashedPassword, err := security.HashPassword(row.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", row.Username, err)
		}
		user := &model.User{
			ID:             uuid.NewString(),
			Username:       row.Username,
			Email:          row.Email,
			HashedPassword: hashedPassword,
			Role:           row.Role,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", row.Username, err)
		}
		seenUsernames[row.Username] = struct{}{}
		seenEmails[row.Email] = struct{}{}
		result.Created++
		result.Reports = append(result.Reports, fmt.Sprintf("created user %q with role %q", row.Username, row.Role))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bulk import: %w", err)
	}
	return result, nil
}
