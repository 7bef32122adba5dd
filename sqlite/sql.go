package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const createHighScoresTableSQL = `
CREATE TABLE IF NOT EXISTS HighScores (
    Key TEXT PRIMARY KEY,
    Value INTEGER NOT NULL,
    UpdatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Store 用 sqlite 保存最高分，按 key 存取整数
type Store struct {
	db *sql.DB
}

// Open 打开数据库并建表
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func executeSQL(db *sql.DB, sqlStatement string) error {
	if _, err := db.Exec(sqlStatement); err != nil {
		return fmt.Errorf("executing SQL statement %q: %w", sqlStatement, err)
	}
	return nil
}

func InitializeDatabase(db *sql.DB) error {
	return executeSQL(db, createHighScoresTableSQL)
}

// Get 读取 key 对应的整数，不存在或读取失败时 ok 为 false
func (s *Store) Get(key string) (int, bool) {
	var value int
	err := s.db.QueryRow("SELECT Value FROM HighScores WHERE Key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("read %s: %v", key, err)
		}
		return 0, false
	}
	return value, true
}

// Set 写入 key 对应的整数
func (s *Store) Set(key string, value int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO HighScores (Key, Value, UpdatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)", key, value)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("write %s: %w", key, err)
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
