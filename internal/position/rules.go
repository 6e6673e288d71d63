package position

import (
	. "github.com/varchess/varchess/internal/helpers"
)

type Variant int

const (
	VariantStandard Variant = iota
	VariantSuicide
	VariantLosers
	VariantAtomic
	VariantCrazyhouse
	VariantHorde
	VariantGrid
	VariantRace
	VariantTwoKings
	VariantExtinction
)

var _variantNames = map[Variant]string{
	VariantStandard:   "standard",
	VariantSuicide:    "suicide",
	VariantLosers:     "losers",
	VariantAtomic:     "atomic",
	VariantCrazyhouse: "crazyhouse",
	VariantHorde:      "horde",
	VariantGrid:       "grid",
	VariantRace:       "race",
	VariantTwoKings:   "twokings",
	VariantExtinction: "extinction",
}

func (v Variant) String() string {
	return _variantNames[v]
}

// Rules is the per-call rule configuration: which variant is active, and
// whether a crazyhouse game is still in its placement sub-phase.
type Rules struct {
	Variant   Variant
	Placement bool
}

func RulesForVariant(v Variant) Rules {
	return Rules{Variant: v}
}

func RulesFromName(name string) (Rules, Error) {
	switch name {
	case "standard", "chess", "":
		return Rules{Variant: VariantStandard}, NilError
	case "suicide", "anti", "antichess", "giveaway":
		return Rules{Variant: VariantSuicide}, NilError
	case "losers":
		return Rules{Variant: VariantLosers}, NilError
	case "atomic":
		return Rules{Variant: VariantAtomic}, NilError
	case "crazyhouse", "house", "zh":
		return Rules{Variant: VariantCrazyhouse}, NilError
	case "placement":
		return Rules{Variant: VariantCrazyhouse, Placement: true}, NilError
	case "horde":
		return Rules{Variant: VariantHorde}, NilError
	case "grid":
		return Rules{Variant: VariantGrid}, NilError
	case "race", "racingkings":
		return Rules{Variant: VariantRace}, NilError
	case "twokings":
		return Rules{Variant: VariantTwoKings}, NilError
	case "extinction":
		return Rules{Variant: VariantExtinction}, NilError
	}
	return Rules{}, Errorf("unknown variant %v", name)
}

func (r Rules) AllowsDrops() bool {
	return r.Variant == VariantCrazyhouse
}

// KingCapturable reports whether kings are ordinary capturable pieces,
// which makes every pseudo-legal move fully legal.
func (r Rules) KingCapturable() bool {
	return r.Variant == VariantSuicide || r.Variant == VariantExtinction
}

// ForcedCapture reports whether a side must capture when it can.
func (r Rules) ForcedCapture() bool {
	return r.Variant == VariantSuicide || r.Variant == VariantLosers
}

// MultiKing reports whether a side may control more than one king, which
// routes king generation through the every-king sweep.
func (r Rules) MultiKing() bool {
	return r.Variant == VariantSuicide || r.Variant == VariantTwoKings || r.Variant == VariantExtinction
}

func (r Rules) ExplodesOnCapture() bool {
	return r.Variant == VariantAtomic
}

func (r Rules) RegionBound() bool {
	return r.Variant == VariantGrid
}

func (r Rules) RaceObjective() bool {
	return r.Variant == VariantRace
}

// KingPromotion reports whether a pawn may promote to a king.
func (r Rules) KingPromotion() bool {
	return r.Variant == VariantSuicide || r.Variant == VariantExtinction
}

// CheckConcept reports whether "in check" means anything under these
// rules. Suicide has a capturable king, extinction kings are ordinary
// pieces, and race outlaws checks entirely.
func (r Rules) CheckConcept() bool {
	switch r.Variant {
	case VariantSuicide, VariantExtinction, VariantRace:
		return false
	}
	return true
}
