package credits

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
)

// SQLiteStore 基于 SQLite 的积分账本
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 打开（或创建）账本数据库
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开账本数据库失败: %w", err)
	}

	// WAL 模式提高并发读写表现
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("启用 WAL 失败: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close 关闭数据库连接
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate 创建账本表
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			credits INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("执行迁移失败: %w", err)
		}
	}
	return nil
}

// GetOrCreateUser 按名字取用户，不存在时以初始积分创建
func (s *SQLiteStore) GetOrCreateUser(name string) (*User, error) {
	user, err := s.userByName(name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO users (id, name, credits) VALUES (?, ?, ?)",
		id, name, InitialCredits,
	); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return s.userByName(name)
}

func (s *SQLiteStore) userByName(name string) (*User, error) {
	var user User
	err := s.db.QueryRow(
		"SELECT id, name, credits, created_at FROM users WHERE name = ?", name,
	).Scan(&user.ID, &user.Name, &user.Credits, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Balance 查询余额
func (s *SQLiteStore) Balance(userID string) (int64, error) {
	var credits int64
	err := s.db.QueryRow("SELECT credits FROM users WHERE id = ?", userID).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return credits, nil
}

// Apply 原子地变动余额并记一笔流水。余额不足时整笔回滚。
func (s *SQLiteStore) Apply(userID string, change int64, reason string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var credits int64
	err = tx.QueryRow("SELECT credits FROM users WHERE id = ?", userID).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	newCredits := credits + change
	if newCredits < 0 {
		return 0, apperrors.ErrInsufficientCredits
	}

	if _, err := tx.Exec("UPDATE users SET credits = ? WHERE id = ?", newCredits, userID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(
		"INSERT INTO transactions (user_id, amount, reason) VALUES (?, ?, ?)",
		userID, change, reason,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newCredits, nil
}

// Transactions 按时间倒序返回最近的流水
func (s *SQLiteStore) Transactions(userID string, limit int) ([]Transaction, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, amount, reason, created_at FROM transactions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Reason, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
