package core

import "fmt"

// LeaderCard is a special per-player bonus card.
type LeaderCard int

const (
	LeaderNone LeaderCard = iota
	LeaderReligious
	LeaderPolitic
	LeaderEconomic
	LeaderCultural
	LeaderCitadel
)

// LeaderSetFor returns the leader cards in play for the given number of
// players, sorted. Smaller games leave the politic and cultural leaders out.
func LeaderSetFor(players int) []LeaderCard {
	if players <= 3 {
		return []LeaderCard{LeaderReligious, LeaderEconomic, LeaderCitadel}
	}
	return []LeaderCard{LeaderReligious, LeaderPolitic, LeaderEconomic, LeaderCultural, LeaderCitadel}
}

func (l LeaderCard) String() string {
	switch l {
	case LeaderNone:
		return "None"
	case LeaderReligious:
		return "Religious"
	case LeaderPolitic:
		return "Politic"
	case LeaderEconomic:
		return "Economic"
	case LeaderCultural:
		return "Cultural"
	case LeaderCitadel:
		return "Citadel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}
