package models

// All returns every model in AutoMigrate order. Parents come before the
// tables that reference them.
func All() []interface{} {
	return []interface{}{
		&Group{},
		&User{},
		&Habit{},
		&Completion{},
		&Streak{},
		&Medal{},
		&GroupAchievement{},
		&CoinGrant{},
		&Reward{},
		&Purchase{},
		&MallItem{},
		&MallPurchase{},
		&Conversion{},
	}
}
