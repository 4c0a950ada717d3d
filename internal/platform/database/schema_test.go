package database

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_AppliesAllStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, stmt := range schema {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(schema[0])).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(schema[1])).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_ActiveBillingIndex(t *testing.T) {
	var found bool
	for _, stmt := range schema {
		if regexp.MustCompile(`billings_active_booking_uidx[\s\S]*WHERE NOT is_deleted`).MatchString(stmt) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "parking"}
	assert.Equal(t, "postgres://u:p@db:5432/parking?sslmode=disable", cfg.dsn())

	cfg.SSLMode = "require"
	assert.Equal(t, "postgres://u:p@db:5432/parking?sslmode=require", cfg.dsn())
}

func TestConfig_DSNEscapesCredentials(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "app", Password: "p@ss/w:rd?", DBName: "parking"}

	parsed, err := url.Parse(cfg.dsn())
	require.NoError(t, err)

	password, ok := parsed.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/w:rd?", password)
	assert.Equal(t, "app", parsed.User.Username())
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/parking", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}
