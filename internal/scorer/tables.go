package scorer

import "github.com/sells-group/creativesync/internal/model"

// The constants below are tuned by hand. They set which signals move the
// forecast and in which direction; their magnitudes carry no statistical meaning.

const (
	// DefaultBaseCTR applies to platforms outside the enumeration.
	DefaultBaseCTR = 3.5

	// MinCTR and MaxCTR bound every returned click-through rate.
	MinCTR = 2.5
	MaxCTR = 12.5

	// CTRNoise is the width of the uniform jitter added before clamping.
	CTRNoise = 0.8

	defaultBaseReach = 100_000
	reachNoise       = 50_000

	baseEngagement   = 70
	maxEngagement    = 98
	engagementNoise  = 5
	baseConfidence   = 85
	confidencePerHit = 2
	maxConfidence    = 95
)

var platformBaseCTR = map[model.Platform]float64{
	model.PlatformSocialMedia: 4.2,
	model.PlatformEmail:       5.8,
	model.PlatformDisplayAds:  2.9,
	model.PlatformInStore:     3.5,
	model.PlatformAll:         3.8,
}

var toneCTRBonus = map[model.Tone]float64{
	model.ToneUrgent:       1.5,
	model.TonePlayful:      1.0,
	model.ToneFriendly:     0.8,
	model.ToneLuxury:       0.5,
	model.ToneProfessional: 0,
}

var audienceCTRBonus = map[model.Audience]float64{
	model.AudienceClubcardMembers: 1.2,
	model.AudienceBudgetConscious: 1.0,
	model.AudiencePremiumShoppers: 0.9,
	model.AudienceYoungFamilies:   0.7,
	model.AudienceHealthFocused:   0.4,
}

// Per-signal CTR increments.
const (
	urgencyBonus     = 1.3
	benefitBonus     = 1.5
	emojiBonus       = 0.6
	numericBonus     = 1.1
	exclamationBonus = 0.4
	lengthBonus      = 0.5
)

var platformBaseReach = map[model.Platform]float64{
	model.PlatformSocialMedia: 250_000,
	model.PlatformEmail:       80_000,
}

var audienceReachBoost = map[model.Audience]float64{
	model.AudienceClubcardMembers: 1.5,
}

// Engagement bonuses.
const (
	comboEngagementBonus = 20 // urgency and benefit together
	toneEngagementBonus  = 8  // playful or friendly voice
	emojiEngagementBonus = 5
)

func baseCTR(p model.Platform) float64 {
	if v, ok := platformBaseCTR[p]; ok {
		return v
	}
	return DefaultBaseCTR
}

func baseReach(p model.Platform) float64 {
	if v, ok := platformBaseReach[p]; ok {
		return v
	}
	return defaultBaseReach
}

func reachBoost(a model.Audience) float64 {
	if v, ok := audienceReachBoost[a]; ok {
		return v
	}
	return 1.0
}
