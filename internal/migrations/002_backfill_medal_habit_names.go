package migrations

import (
	"gorm.io/gorm"
)

// Migration002BackfillMedalHabitNames copies the habit name onto medals
// minted before the name was denormalized. Medals outlive their habit,
// so rows whose habit is already gone keep an empty name.
func Migration002BackfillMedalHabitNames() Migration {
	return Migration{
		ID:        "002_backfill_medal_habit_names",
		Name:      "Backfill denormalized habit names on medals",
		DependsOn: []string{"001_dedupe_completions"},
		Up: func(db *gorm.DB) error {
			upd := `
				UPDATE medals
				SET habit_name = (
					SELECT name FROM habits WHERE habits.id = medals.habit_id
				)
				WHERE (habit_name = '' OR habit_name IS NULL)
				AND EXISTS (
					SELECT 1 FROM habits WHERE habits.id = medals.habit_id
				)
			`
			return db.Exec(upd).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`UPDATE medals SET habit_name = ''`).Error
		},
	}
}
