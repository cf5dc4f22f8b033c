package migrations

import (
	"gorm.io/gorm"
)

// Migration001DedupeCompletions removes duplicate completion rows that
// predate the (user_id, habit_id, date) unique index. Older data could
// carry several rows for the same day, each of which inflated the
// balance by one; reconciliation repairs the balances afterwards, this
// repairs the facts.
func Migration001DedupeCompletions() Migration {
	return Migration{
		ID:   "001_dedupe_completions",
		Name: "Remove duplicate completion rows, keep the oldest",
		Up: func(db *gorm.DB) error {
			del := `
				DELETE FROM completions
				WHERE id NOT IN (
					SELECT MIN(id) FROM completions
					GROUP BY user_id, habit_id, date
				)
			`
			return db.Exec(del).Error
		},
		Down: func(db *gorm.DB) error {
			// Dropped rows are gone; nothing to restore.
			return nil
		},
	}
}
