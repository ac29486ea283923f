package core

import "fmt"

// InfluenceType names one of the five influence zones. Buildings carry one of
// the first four; the citadel only exists as a zone.
type InfluenceType int

const (
	InfluenceReligious InfluenceType = iota
	InfluencePolitic
	InfluenceEconomic
	InfluenceCultural
	InfluenceCitadel
)

const NumInfluenceTypes = 5

// ZoneScoringOrder is the order in which influence zones are scored at the end
// of a century. Cubes carried out of a zone move to the next one in this order.
var ZoneScoringOrder = [NumInfluenceTypes]InfluenceType{
	InfluenceReligious,
	InfluencePolitic,
	InfluenceEconomic,
	InfluenceCultural,
	InfluenceCitadel,
}

// BuildingInfluences lists the influence types a building tile can carry.
var BuildingInfluences = [4]InfluenceType{
	InfluenceReligious,
	InfluencePolitic,
	InfluenceEconomic,
	InfluenceCultural,
}

// IsValid reports whether the value names an influence zone
func (i InfluenceType) IsValid() bool {
	return i >= InfluenceReligious && i <= InfluenceCitadel
}

func (i InfluenceType) String() string {
	switch i {
	case InfluenceReligious:
		return "Religious"
	case InfluencePolitic:
		return "Politic"
	case InfluenceEconomic:
		return "Economic"
	case InfluenceCultural:
		return "Cultural"
	case InfluenceCitadel:
		return "Citadel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(i))
	}
}
