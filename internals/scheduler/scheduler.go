// file: internals/scheduler/scheduler.go
package scheduler

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	inviteModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	authModel "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/model"
)

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// StartCleanupCron starts the housekeeping jobs: expired invites and
// stale blacklist tokens are hard-deleted on a nightly schedule. Call
// from main.go.
func StartCleanupCron(db *gorm.DB) *cron.Cron {
	schedule := getEnvOrDefault("CLEANUP_CRON_SCHEDULE", "30 2 * * *")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := purgeExpiredInvites(ctx, db); err != nil {
			log.Printf("[CLEANUP] invite purge error: %v", err)
		}
		if err := purgeExpiredBlacklistTokens(ctx, db); err != nil {
			log.Printf("[CLEANUP] blacklist purge error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[CLEANUP] add cron failed: %v", err)
	}

	log.Printf("[CLEANUP] started schedule=%q", schedule)
	c.Start()
	return c
}

// purgeExpiredInvites removes invites past their expiry that were never
// redeemed. Used invites stay as an audit trail.
func purgeExpiredInvites(ctx context.Context, db *gorm.DB) error {
	res := db.WithContext(ctx).
		Where("invite_expires_at < ? AND invite_used_at IS NULL", time.Now()).
		Delete(&inviteModel.Invite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] purged %d expired invites", res.RowsAffected)
	}
	return nil
}

// purgeExpiredBlacklistTokens drops blacklist rows whose tokens have
// expired anyway; they can no longer authenticate anything.
func purgeExpiredBlacklistTokens(ctx context.Context, db *gorm.DB) error {
	res := db.WithContext(ctx).Unscoped().
		Where("expired_at < ?", time.Now()).
		Delete(&authModel.TokenBlacklist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] purged %d expired blacklist tokens", res.RowsAffected)
	}
	return nil
}
