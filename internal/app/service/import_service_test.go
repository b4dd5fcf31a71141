package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"hackfest_backend/internal/domain/model"
)

// stubDriver hands out connections whose only purpose is to open and close
// transactions. The repositories under test keep their own state, so no
// statement ever runs through it.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("stub", stubDriver{})
}

func openStubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("stub", "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"username,email,password,role",
		"dana,dana@example.com,secret123,participant",
		"judge_amit,amit@example.com,secret456,judge",
		"noemail,,secret789,participant",
		"badrole,bad@example.com,secret000,wizard",
	}, "\n")

	rows, reports, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d valid rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Username != "dana" || rows[0].Role != "participant" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Username != "judge_amit" || rows[1].Role != "judge" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	// One report per skipped row.
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2: %v", len(reports), reports)
	}
}

func TestParseCSVHeaderOrderIndependent(t *testing.T) {
	input := "role,password,username,email\nparticipant,secret123,dana,dana@example.com\n"

	rows, _, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Username != "dana" || rows[0].Email != "dana@example.com" || rows[0].Password != "secret123" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestParseCSVNormalizesRoleCase(t *testing.T) {
	input := "username,email,password,role\ndana,dana@example.com,secret123,Participant\n"

	rows, _, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Role != "participant" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestParseCSVStripsHeaderBOM(t *testing.T) {
	input := "\uFEFF" + "username,email,password,role\ndana,dana@example.com,secret123,participant\n"

	rows, _, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Username != "dana" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestBulkCreate(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewImportService(userRepo, openStubDB(t))

	rows := []ImportRow{
		{Username: "dana", Password: "secret123", Email: "dana@example.com", Role: "participant"},
		{Username: "amit", Password: "secret456", Email: "amit@example.com", Role: "judge"},
	}
	result, err := svc.BulkCreate(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if result.Created != 2 || result.Skipped != 0 {
		t.Fatalf("created=%d skipped=%d, want 2/0: %v", result.Created, result.Skipped, result.Reports)
	}
	stored, err := userRepo.FindByUsername(context.Background(), "amit")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if stored.Role != "judge" {
		t.Errorf("role = %q, want judge", stored.Role)
	}
	if stored.HashedPassword == "secret456" {
		t.Error("password stored in plain text")
	}
}

func TestBulkCreateSkipsDuplicates(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.users["u1"] = &model.User{ID: "u1", Username: "existing", Email: "existing@example.com", Role: "participant"}
	svc := NewImportService(userRepo, openStubDB(t))

	rows := []ImportRow{
		{Username: "existing", Password: "secret123", Email: "new@example.com", Role: "participant"},
		{Username: "dana", Password: "secret123", Email: "dana@example.com", Role: "participant"},
		{Username: "dana", Password: "other999", Email: "dana2@example.com", Role: "judge"},
		{Username: "other", Password: "secret123", Email: "dana@example.com", Role: "participant"},
		{Username: "amit", Password: "secret456", Email: "amit@example.com", Role: "judge"},
	}
	result, err := svc.BulkCreate(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkCreate must skip duplicates, not fail: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("created = %d, want 2: %v", result.Created, result.Reports)
	}
	if result.Skipped != 3 {
		t.Errorf("skipped = %d, want 3: %v", result.Skipped, result.Reports)
	}
	if _, err := userRepo.FindByUsername(context.Background(), "amit"); err != nil {
		t.Errorf("user after skipped rows not created: %v", err)
	}
	stored, err := userRepo.FindByUsername(context.Background(), "dana")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if stored.Role != "participant" {
		t.Errorf("first occurrence should win, got role %q", stored.Role)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	input := "username,email,password\ndana,dana@example.com,secret123\n"

	if _, _, err := ParseCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for missing role column")
	}
}
