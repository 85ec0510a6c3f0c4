package domain

type InteractionType string

const (
	InteractionLandslideRisk       InteractionType = "increased_landslide_risk"
	InteractionRisingWater         InteractionType = "rising_water_levels"
	InteractionSlipperyGround      InteractionType = "slippery_ground"
	InteractionFallingBranches     InteractionType = "falling_branches"
	InteractionDangerousRidgelines InteractionType = "dangerous_ridgelines"
	InteractionIceFormation        InteractionType = "ice_formation"
	InteractionSlipperySurfaces    InteractionType = "slippery_surfaces"
	InteractionExtremeHeat         InteractionType = "extreme_heat_danger"
	InteractionReducedVisibility   InteractionType = "reduced_visibility"
)

// Interaction - опасность от сочетания местности и погоды
type Interaction struct {
	Type        InteractionType `json:"type"`
	Description string          `json:"description"`
	Severity    Severity        `json:"severity"`
}
