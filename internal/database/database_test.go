package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-sqlite3"

	"bot-precos/internal/account"
	"bot-precos/internal/database"
	"bot-precos/internal/item"
	"bot-precos/internal/logging"
	"bot-precos/internal/models"
	"bot-precos/internal/store"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────
type pageFetcher string

func (p pageFetcher) Fetch(context.Context, string) ([]byte, error) {
	return []byte(p), nil
}

var checkedAt = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newItem(t *testing.T) *item.Item {
	t.Helper()
	tracker := item.NewTracker(
		pageFetcher(`<span id="priceblock_ourprice">$396.96</span>`),
		item.WithLogger(logging.Discard()),
		item.WithClock(func() time.Time { return checkedAt }),
	)
	it, err := tracker.Create(context.Background(), "Chair", "https://amazon.com/dp/1", store.Amazon)
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	return it
}

func itemRows(records ...models.ItemRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "url", "store", "price", "checked_at"})
	for _, r := range records {
		rows.AddRow(r.ID, r.Name, r.URL, r.Store, r.Price, r.CheckedAt)
	}
	return rows
}

func newMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err=%v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return database.Wrap(conn), mock
}

// ─────────────────────────────────────────────
// users
// ─────────────────────────────────────────────
func TestDB_FindByEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password FROM users WHERE email = ?")).
		WithArgs("jose@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow("abc123", "jose@example.com", "$pbkdf2-sha512$..."))

	got, err := db.FindByEmail(context.Background(), "jose@example.com")
	if err != nil {
		t.Fatalf("FindByEmail err=%v", err)
	}
	want := &account.Account{ID: "abc123", Email: "jose@example.com", PasswordHash: "$pbkdf2-sha512$..."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FindByEmail mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestDB_FindByEmail_Missing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT id, email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}))

	got, err := db.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil || got != nil {
		t.Fatalf("FindByEmail got=%v err=%v, want nil, nil", got, err)
	}
}

func TestDB_Insert(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, email, password) VALUES (?, ?, ?)")).
		WithArgs("abc123", "jose@example.com", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := db.Insert(context.Background(), &account.Account{ID: "abc123", Email: "jose@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Insert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestDB_Insert_UniqueViolation(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	err := db.Insert(context.Background(), &account.Account{ID: "x", Email: "jose@example.com", PasswordHash: "h"})
	if !errors.Is(err, account.ErrAlreadyRegistered) {
		t.Fatalf("Insert err=%v, want ErrAlreadyRegistered", err)
	}
}

func TestDB_Insert_OtherError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk full"))

	err := db.Insert(context.Background(), &account.Account{ID: "x", Email: "jose@example.com", PasswordHash: "h"})
	if err == nil || errors.Is(err, account.ErrAlreadyRegistered) {
		t.Fatalf("Insert err=%v, want wrapped disk error", err)
	}
}

// ─────────────────────────────────────────────
// items
// ─────────────────────────────────────────────
func TestDB_SaveItem(t *testing.T) {
	db, mock := newMock(t)
	it := newItem(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO items (name, url, store, price, checked_at) VALUES (?, ?, ?, ?, ?)")).
		WithArgs("Chair", "https://amazon.com/dp/1", "amazon", "396.9", checkedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := db.SaveItem(context.Background(), it)
	if err != nil {
		t.Fatalf("SaveItem err=%v", err)
	}
	if id != 7 {
		t.Fatalf("SaveItem id=%d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestDB_GetItem(t *testing.T) {
	db, mock := newMock(t)
	want := models.ItemRecord{ID: 3, Name: "Chair", URL: "https://amazon.com/dp/1", Store: "amazon", Price: "396.9", CheckedAt: checkedAt}

	mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(itemRows(want))

	got, err := db.GetItem(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetItem err=%v", err)
	}
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Fatalf("GetItem mismatch (-want +got):\n%s", diff)
	}

	mock.ExpectQuery("FROM items WHERE id").WithArgs(int64(99)).WillReturnRows(itemRows())
	got, err = db.GetItem(context.Background(), 99)
	if err != nil || got != nil {
		t.Fatalf("GetItem(99) got=%v err=%v, want nil, nil", got, err)
	}
}

func TestDB_ListItems(t *testing.T) {
	db, mock := newMock(t)
	want := []models.ItemRecord{
		{ID: 2, Name: "Chair", URL: "https://amazon.com/dp/1", Store: "amazon", Price: "390.0", CheckedAt: checkedAt.Add(time.Hour)},
		{ID: 1, Name: "Chair", URL: "https://amazon.com/dp/1", Store: "amazon", Price: "396.9", CheckedAt: checkedAt},
	}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY checked_at DESC, id DESC")).WillReturnRows(itemRows(want...))

	got, err := db.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListItems mismatch (-want +got):\n%s", diff)
	}
}

func TestDB_ListTracked(t *testing.T) {
	db, mock := newMock(t)
	want := []models.ItemRecord{
		{ID: 5, Name: "Lamp", URL: "https://www.johnlewis.com/lamp", Store: "johnlewis", Price: "45.0", CheckedAt: checkedAt},
	}

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY url, store")).WillReturnRows(itemRows(want...))

	got, err := db.ListTracked(context.Background())
	if err != nil {
		t.Fatalf("ListTracked err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListTracked mismatch (-want +got):\n%s", diff)
	}
}

func TestDB_ListItems_QueryError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("no such table: items"))

	if _, err := db.ListItems(context.Background()); err == nil {
		t.Fatal("ListItems err=nil, want error")
	}
}
