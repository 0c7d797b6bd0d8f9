package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open はDATABASE_URLのスキームに応じたデータベース接続を開く。
// postgres:// / postgresql:// はlib/pq、sqlite:// はmodernc.org/sqliteを使用する。
// sql.Openは接続を試行しないため、実際の接続確認にはdb.Ping()を使用すること。
func Open(databaseURL string) (*sql.DB, error) {
	driver, dsn, err := resolveDriver(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// resolveDriver は接続URLからドライバ名とDSNを決定する。
// SQLiteの場合はコネクションプール内の全接続に効くよう、
// 外部キー制約・busyタイムアウト・WALをDSNのpragmaで有効化し、
// タイムスタンプをSQLite標準のテキスト形式で書き込むようにする。
func resolveDriver(databaseURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres", databaseURL, nil

	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite database path is empty")
		}
		dsn := path + "?_time_format=sqlite" +
			"&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		return "sqlite", dsn, nil

	default:
		return "", "", fmt.Errorf("unsupported database url scheme (expected postgres:// or sqlite://)")
	}
}
