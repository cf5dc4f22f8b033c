package models

import "time"

// User is keyed by the chat platform's user id. Created on first
// interaction, never deleted while a group references it.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	GroupID   *uint     `gorm:"index" json:"groupId"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"-"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`

	// Typed point balances. Invariant: never negative.
	PointsPhysical    int `gorm:"default:0" json:"pointsPhysical"`
	PointsArts        int `gorm:"default:0" json:"pointsArts"`
	PointsFoodRelated int `gorm:"default:0" json:"pointsFoodRelated"`
	PointsEducational int `gorm:"default:0" json:"pointsEducational"`
	PointsOther       int `gorm:"default:0" json:"pointsOther"`
	Coins             int `gorm:"default:0" json:"coins"`
}

// Balance returns the user's balance for a point type (or coins).
func (u *User) Balance(t PointType) int {
	switch t {
	case PointPhysical:
		return u.PointsPhysical
	case PointArts:
		return u.PointsArts
	case PointFood:
		return u.PointsFoodRelated
	case PointEducational:
		return u.PointsEducational
	case PointOther:
		return u.PointsOther
	case PointCoins:
		return u.Coins
	}
	return 0
}

// AddBalance adjusts the user's balance for a point type by delta.
// Callers are responsible for the non-negativity check before debiting.
func (u *User) AddBalance(t PointType, delta int) {
	switch t {
	case PointPhysical:
		u.PointsPhysical += delta
	case PointArts:
		u.PointsArts += delta
	case PointFood:
		u.PointsFoodRelated += delta
	case PointEducational:
		u.PointsEducational += delta
	case PointOther:
		u.PointsOther += delta
	case PointCoins:
		u.Coins += delta
	}
}

// Balances is the wire shape for a user's full balance sheet.
type Balances struct {
	Physical    int `json:"physical"`
	Arts        int `json:"arts"`
	FoodRelated int `json:"food_related"`
	Educational int `json:"educational"`
	Other       int `json:"other"`
	Coins       int `json:"coins"`
}

// Snapshot copies the user's balances into a Balances value.
func (u *User) Snapshot() Balances {
	return Balances{
		Physical:    u.PointsPhysical,
		Arts:        u.PointsArts,
		FoodRelated: u.PointsFoodRelated,
		Educational: u.PointsEducational,
		Other:       u.PointsOther,
		Coins:       u.Coins,
	}
}
