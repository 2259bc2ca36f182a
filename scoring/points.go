package scoring

import (
	"github.com/gridcall/api/derive"
	"github.com/gridcall/api/models"
)

// Per-category point values.
const (
	polePoints          = 1.0
	podiumExactPoints   = 2.0
	podiumPartialPoints = 1.0
	chaserPoints        = 1.0
	pickDriverPoints    = 1.0
	pickTeamPoints      = 2.0
)

// Points scores one prediction against a derived outcome. Pure and
// deterministic; the full-send category is doubled only when it earned
// anything, so a missed call can never be rescued by the modifier.
func Points(p *models.Prediction, out *derive.Outcome) float64 {
	category := map[string]float64{}

	if p.PoleDriver == out.Pole {
		category[models.CategoryPole] = polePoints
	}

	category[models.CategoryPodium] = podiumPoints(p, out)

	if p.ChaserDriver == out.Chaser {
		category[models.CategoryChaser] = chaserPoints
	}

	category[models.CategoryBreakout] = pickPoints(p.BreakoutPick(), out.BreakoutDrivers, out.BreakoutTeams)
	category[models.CategoryBust] = pickPoints(p.BustPick(), out.BustDrivers, out.BustTeams)

	if c := p.FullSendCategory; c != "" && category[c] > 0 {
		category[c] *= 2
	}

	var total float64
	for _, pts := range category {
		total += pts
	}
	return total
}

// podiumPoints awards 2 per exact position and 1 for a driver who made the
// podium at the wrong step, summed across P1-P3 (max 6 before doubling).
func podiumPoints(p *models.Prediction, out *derive.Outcome) float64 {
	predicted := [3]string{p.PodiumP1, p.PodiumP2, p.PodiumP3}

	var pts float64
	for i, driver := range predicted {
		switch {
		case driver == out.Podium[i]:
			pts += podiumExactPoints
		case driver == out.Podium[0] || driver == out.Podium[1] || driver == out.Podium[2]:
			pts += podiumPartialPoints
		}
	}
	return pts
}

// pickPoints scores a tagged driver-or-team pick against the matching cohort.
func pickPoints(pick models.Pick, drivers, teams []string) float64 {
	switch pick.Kind {
	case models.PickDriver:
		if contains(drivers, pick.Name) {
			return pickDriverPoints
		}
	case models.PickTeam:
		if contains(teams, pick.Name) {
			return pickTeamPoints
		}
	}
	return 0
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
