package config

import (
	"log"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// Shared secret presented by the bot gateway when exchanging a
	// platform user id for a user token.
	GatewaySecret string `mapstructure:"GATEWAY_SECRET"`

	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Redis (optional; leaderboard cache degrades gracefully without it)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Economy knobs
	StreakMedalDays int `mapstructure:"STREAK_MEDAL_DAYS"`
	GroupBonusCoins int `mapstructure:"GROUP_BONUS_COINS"`
	ConversionFloor int `mapstructure:"CONVERSION_FLOOR"`

	// Comma-separated platform user ids allowed on admin endpoints.
	AdminIDs string `mapstructure:"ADMIN_IDS"`
}

// IsAdmin reports whether the user id is in the admin allow list.
func (c *Config) IsAdmin(userID int64) bool {
	id := strconv.FormatInt(userID, 10)
	for _, part := range strings.Split(c.AdminIDs, ",") {
		if strings.TrimSpace(part) == id {
			return true
		}
	}
	return false
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("STREAK_MEDAL_DAYS", 30)
	viper.SetDefault("GROUP_BONUS_COINS", 10)
	viper.SetDefault("CONVERSION_FLOOR", 2)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// BonusTier maps a minimum medal count to a conversion multiplier applied
// on top of the base 2:1 ratio. Tiers must be sorted ascending by Medals.
type BonusTier struct {
	Medals     int
	Multiplier float64
}

// BonusTiers is the medal-bonus conversion curve. With 3 medals every 2
// points converted yield 1.5 instead of 1 (multiplier on the base credit,
// final credit floored).
var BonusTiers = []BonusTier{
	{Medals: 0, Multiplier: 1.0},
	{Medals: 3, Multiplier: 1.5},
	{Medals: 6, Multiplier: 1.75},
	{Medals: 10, Multiplier: 2.0},
}

// MultiplierFor returns the conversion multiplier for a medal count.
func MultiplierFor(medals int) float64 {
	m := 1.0
	for _, tier := range BonusTiers {
		if medals >= tier.Medals {
			m = tier.Multiplier
		}
	}
	return m
}
