package mt

import (
	"math"
	"time"
)

const toolCapsVer = 5

// ToolCaps are the capabilities of a tool.
// They are only sent if NonNil is set.
type ToolCaps struct {
	NonNil bool

	AttackCooldown float32
	MaxDropLvl     int16

	GroupCaps []ToolGroupCap
	DmgGroups []Group

	PunchUses uint16
}

type ToolGroupCap struct {
	Name   string
	Uses   int16
	MaxLvl int16
	Times  []DigTime
}

type DigTime struct {
	Rating int16
	Time   float32
}

// DigTime returns how long it takes to dig a node with groups,
// and false if the tool can't dig it.
func (tc ToolCaps) DigTime(groups map[string]int16) (time.Duration, bool) {
	immDig := groups["dig_immediate"]

	minTime := float32(math.Inf(1))

	lvl := groups["level"]
	for _, gc := range tc.GroupCaps {
		if gc.Name == "dig_immediate" {
			immDig = 0
		}

		if lvl > gc.MaxLvl {
			continue
		}

		r := groups[gc.Name]
		for _, dt := range gc.Times {
			t := dt.Time
			if lvl < gc.MaxLvl {
				t /= float32(gc.MaxLvl - lvl)
			}
			if dt.Rating == r && t < minTime {
				minTime = t
			}
		}
	}

	switch immDig {
	case 2:
		return time.Second / 2, true
	case 3:
		return 0, true
	}

	if math.IsInf(float64(minTime), 1) {
		return 0, false
	}

	return time.Duration(math.Ceil(float64(minTime) * float64(time.Second))), true
}
