package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartResetCodeCleaner clears expired password-recovery codes with interval
func StartResetCodeCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    UPDATE users
                       SET reset_code = '', reset_code_expires_at = NULL
                     WHERE reset_code <> ''
                       AND reset_code_expires_at < NOW()
                `)
				if err != nil {
					log.Error("failed to clean expired reset codes", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired reset codes", zap.Int64("cleared", rows))
				}
			}
		}
	}()
}
