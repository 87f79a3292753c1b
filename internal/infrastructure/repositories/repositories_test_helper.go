package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		billing_type TEXT NOT NULL DEFAULT 'usage',
		api_monthly_limit INTEGER NOT NULL DEFAULT 100,
		card_price_cents INTEGER NOT NULL DEFAULT 325,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'MEMBER',
		notes_approved INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		user_id TEXT,
		name TEXT NOT NULL,
		key_prefix TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		scopes TEXT NOT NULL,
		last_used_at DATETIME,
		expires_at DATETIME,
		revoked_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createNoteTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notes (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		deal_id TEXT,
		call_id TEXT,
		recipient_name TEXT NOT NULL,
		recipient_address TEXT,
		draft_text TEXT NOT NULL DEFAULT '',
		final_text TEXT,
		status TEXT NOT NULL,
		edit_delta TEXT,
		handwrite_order_id TEXT,
		approved_at DATETIME,
		sent_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createToneProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tone_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		reinforced_phrases TEXT NOT NULL DEFAULT '[]',
		discouraged_phrases TEXT NOT NULL DEFAULT '[]',
		target_length INTEGER NOT NULL DEFAULT 0,
		exemplars TEXT NOT NULL DEFAULT '[]',
		notes_analyzed INTEGER NOT NULL DEFAULT 0,
		learning_complete BOOLEAN NOT NULL DEFAULT 0,
		style_summary TEXT,
		last_updated DATETIME,
		created_at DATETIME
	);`)
}

func createUsageCounterTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE usage_counters (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		cards_sent INTEGER NOT NULL DEFAULT 0,
		api_calls INTEGER NOT NULL DEFAULT 0,
		amount_owed_cents INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(account_id, year, month)
	);`)
}

func createDealTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE deals (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT,
		company TEXT,
		amount_cents INTEGER NOT NULL DEFAULT 0,
		stage TEXT NOT NULL DEFAULT 'closed_won',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCallTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE calls (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		deal_id TEXT,
		transcript TEXT NOT NULL,
		summary TEXT,
		recording_url TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
