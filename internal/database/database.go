package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"bot-precos/internal/account"
	"bot-precos/internal/item"
	"bot-precos/internal/models"

	"github.com/mattn/go-sqlite3"
)

// DB encapsula a conexão com o banco de dados
type DB struct {
	conn *sql.DB
}

// New cria uma nova instância do banco de dados
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	db := Wrap(conn)

	if err := db.init(); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("Banco de dados inicializado com sucesso", slog.String("path", dbPath))
	return db, nil
}

// Wrap usa uma conexão já aberta, sem criar as tabelas
func Wrap(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close fecha a conexão com o banco de dados
func (db *DB) Close() error {
	return db.conn.Close()
}

// init cria as tabelas necessárias
func (db *DB) init() error {
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		store TEXT NOT NULL,
		price TEXT NOT NULL,
		checked_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_url_store ON items (url, store);
	`

	_, err := db.conn.Exec(createTablesSQL)
	return err
}

// FindByEmail retorna o usuário com o e-mail, ou nil se não existir
func (db *DB) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	const query = `SELECT id, email, password FROM users WHERE email = ? LIMIT 1`

	var a account.Account
	err := db.conn.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return &a, nil
}

// Insert salva um novo usuário. A restrição UNIQUE do e-mail vira
// account.ErrAlreadyRegistered.
func (db *DB) Insert(ctx context.Context, a *account.Account) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (id, email, password) VALUES (?, ?, ?)",
		a.ID, a.Email, a.PasswordHash,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return account.ErrAlreadyRegistered
		}
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

// SaveItem salva o preço de um item no histórico
func (db *DB) SaveItem(ctx context.Context, it *item.Item) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		"INSERT INTO items (name, url, store, price, checked_at) VALUES (?, ?, ?, ?, ?)",
		it.Name(), it.URL(), it.Store().Name(), it.Price(), it.CheckedAt().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("SaveItem: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("SaveItem: LastInsertId: %w", err)
	}
	return id, nil
}

// GetItem retorna um registro do histórico pelo ID, ou nil se não existir
func (db *DB) GetItem(ctx context.Context, id int64) (*models.ItemRecord, error) {
	const query = `SELECT id, name, url, store, price, checked_at FROM items WHERE id = ?`

	var r models.ItemRecord
	err := db.conn.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Name, &r.URL, &r.Store, &r.Price, &r.CheckedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetItem: %w", err)
	}
	return &r, nil
}

// ListItems retorna todo o histórico, do mais recente ao mais antigo
func (db *DB) ListItems(ctx context.Context) ([]models.ItemRecord, error) {
	const query = `
SELECT id, name, url, store, price, checked_at
FROM items
ORDER BY checked_at DESC, id DESC`
	return db.queryItems(ctx, "ListItems", query)
}

// ListTracked retorna o registro mais recente de cada par (url, loja)
func (db *DB) ListTracked(ctx context.Context) ([]models.ItemRecord, error) {
	const query = `
SELECT i.id, i.name, i.url, i.store, i.price, i.checked_at
FROM items i
JOIN (SELECT MAX(id) AS id FROM items GROUP BY url, store) latest ON latest.id = i.id
ORDER BY i.id ASC`
	return db.queryItems(ctx, "ListTracked", query)
}

func (db *DB) queryItems(ctx context.Context, op, query string) ([]models.ItemRecord, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.ItemRecord
	for rows.Next() {
		var r models.ItemRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.URL, &r.Store, &r.Price, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return records, nil
}
