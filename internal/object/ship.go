package object

import (
	"fmt"

	"github.com/tomz197/stellarclash/internal/draw"
)

// ShipType selects one of the playable ship presets.
type ShipType int

const (
	ShipClassic ShipType = iota
	ShipViper
	ShipPhoenix
	ShipStealth
	ShipHeavy
)

// Ability is a ship's special trait.
type Ability int

const (
	AbilityNone Ability = iota
	AbilityRegen
	AbilityStealth
	AbilityDoubleShot
)

// ShipStats holds the fixed numbers of a ship preset.
type ShipStats struct {
	Name         string
	Description  string
	Speed        float64
	MaxHealth    int
	ShotCooldown float64
	Hull         draw.Color
	EngineColor  draw.Color
	Ability      Ability
}

var ships = [...]ShipStats{
	ShipClassic: {
		Name:         "Classic",
		Description:  "Balanced fighter",
		Speed:        300,
		MaxHealth:    3,
		ShotCooldown: 0.15,
		Hull:         draw.White,
		EngineColor:  draw.Orange,
	},
	ShipViper: {
		Name:         "Viper",
		Description:  "Fast, fragile, quick trigger",
		Speed:        400,
		MaxHealth:    2,
		ShotCooldown: 0.12,
		Hull:         draw.Green,
		EngineColor:  draw.Green,
	},
	ShipPhoenix: {
		Name:         "Phoenix",
		Description:  "Regenerates 1 HP every 5s",
		Speed:        250,
		MaxHealth:    4,
		ShotCooldown: 0.18,
		Hull:         draw.Red,
		EngineColor:  draw.Red,
		Ability:      AbilityRegen,
	},
	ShipStealth: {
		Name:         "Stealth",
		Description:  "Cloaks for 2s when hit",
		Speed:        320,
		MaxHealth:    2,
		ShotCooldown: 0.14,
		Hull:         draw.Gray,
		EngineColor:  draw.Purple,
		Ability:      AbilityStealth,
	},
	ShipHeavy: {
		Name:         "Heavy",
		Description:  "Slow tank with twin cannons",
		Speed:        200,
		MaxHealth:    5,
		ShotCooldown: 0.20,
		Hull:         draw.Blue,
		EngineColor:  draw.Blue,
		Ability:      AbilityDoubleShot,
	},
}

// ShipTypes lists every preset in menu order.
func ShipTypes() []ShipType {
	return []ShipType{ShipClassic, ShipViper, ShipPhoenix, ShipStealth, ShipHeavy}
}

// Stats returns the preset for t.
func (t ShipType) Stats() ShipStats {
	if t < 0 || int(t) >= len(ships) {
		return ships[ShipClassic]
	}
	return ships[t]
}

func (t ShipType) String() string {
	return t.Stats().Name
}

// ShipFromNumber maps a 1-based menu number to a ship type.
func ShipFromNumber(n int) (ShipType, error) {
	if n < 1 || n > len(ships) {
		return ShipClassic, fmt.Errorf("ship number %d out of range 1-%d", n, len(ships))
	}
	return ShipType(n - 1), nil
}
