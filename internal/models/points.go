package models

// PointType is the closed set of habit point categories. Every habit,
// reward and conversion is tagged with one; balances are tracked per type.
type PointType string

const (
	PointPhysical    PointType = "physical"
	PointArts        PointType = "arts"
	PointFood        PointType = "food_related"
	PointEducational PointType = "educational"
	PointOther       PointType = "other"

	// PointAny is valid only on rewards: the buyer pays the price from
	// any mix of the five types.
	PointAny PointType = "any"

	// PointCoins is the communal currency. Valid only as a conversion
	// destination, never a source and never a habit type.
	PointCoins PointType = "coins"
)

// AllPointTypes lists the five earnable categories.
var AllPointTypes = []PointType{
	PointPhysical,
	PointArts,
	PointFood,
	PointEducational,
	PointOther,
}

// Valid reports whether t is one of the five earnable categories.
func (t PointType) Valid() bool {
	for _, pt := range AllPointTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// ValidForReward reports whether t can price a reward.
func (t PointType) ValidForReward() bool {
	return t.Valid() || t == PointAny
}

// ValidConversionTarget reports whether t can receive converted points.
func (t PointType) ValidConversionTarget() bool {
	return t.Valid() || t == PointCoins
}

// BalanceColumn returns the users table column holding the balance for t.
func BalanceColumn(t PointType) string {
	switch t {
	case PointPhysical:
		return "points_physical"
	case PointArts:
		return "points_arts"
	case PointFood:
		return "points_food_related"
	case PointEducational:
		return "points_educational"
	case PointOther:
		return "points_other"
	case PointCoins:
		return "coins"
	}
	return ""
}
