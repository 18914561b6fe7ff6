package gates

import "github.com/myrjola/docket/internal/models"

// DefaultGates returns the stock gate structure for a case length tier, used
// when a case is scaffolded without an authored gate list.
func DefaultGates(tier int) []models.BackboneGate {
	switch tier {
	case 1:
		return []models.BackboneGate{
			{Name: "trial_opening", Kind: models.GateKindTrial},
			{Name: "first_witness_battle", Kind: models.GateKindTrial},
			{Name: "final_revelation", Kind: models.GateKindTrial},
		}
	case 2:
		return []models.BackboneGate{
			{Name: "investigation_day", Kind: models.GateKindInvestigation},
			{Name: "trial_opening", Kind: models.GateKindTrial},
			{Name: "cross_examination", Kind: models.GateKindTrial},
			{Name: "final_battle", Kind: models.GateKindTrial},
		}
	case 3:
		return []models.BackboneGate{
			{Name: "investigation_day_1", Kind: models.GateKindInvestigation},
			{Name: "investigation_day_2", Kind: models.GateKindInvestigation},
			{Name: "brief_investigation", Kind: models.GateKindInvestigation},
			{Name: "trial_day_1", Kind: models.GateKindTrial},
			{Name: "trial_day_2", Kind: models.GateKindTrial},
			{Name: "final_victory", Kind: models.GateKindTrial},
		}
	default:
		return nil
	}
}
