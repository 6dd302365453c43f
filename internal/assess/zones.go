package assess

import "github.com/claude/vigor/internal/models"

// zoneInfo holds the constant per-zone lookups: the recommended strain band
// and the decision label shown to the subject.
type zoneInfo struct {
	target models.StrainTarget
	label  string
}

var zoneTable = map[models.RecoveryZone]zoneInfo{
	models.ZoneGreen:  {target: models.StrainTarget{Min: 14, Max: 21}, label: "push"},
	models.ZoneYellow: {target: models.StrainTarget{Min: 8, Max: 14}, label: "moderate effort"},
	models.ZoneRed:    {target: models.StrainTarget{Min: 0, Max: 8}, label: "recover"},
}

// StrainTargetFor returns the recommended strain band for a zone.
func StrainTargetFor(zone models.RecoveryZone) models.StrainTarget {
	return zoneTable[zone].target
}

// RecommendationFor returns the decision label for a zone.
func RecommendationFor(zone models.RecoveryZone) string {
	return zoneTable[zone].label
}
