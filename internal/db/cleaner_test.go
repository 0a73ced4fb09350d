package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func TestStartResetCodeCleaner_ClearsExpiredCodes(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer database.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartResetCodeCleaner(ctx, database, 10*time.Millisecond, zap.NewNop())

	deadline := time.After(2 * time.Second)
	for {
		if mock.ExpectationsWereMet() == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("cleaner never ran: %v", mock.ExpectationsWereMet())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStartResetCodeCleaner_StopsOnCancel(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	StartResetCodeCleaner(ctx, database, time.Millisecond, zap.NewNop())

	// A cancelled context must prevent any database work.
	time.Sleep(50 * time.Millisecond)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
