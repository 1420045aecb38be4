package model

import "strings"

// Platform is the delivery channel a campaign targets.
type Platform int

const (
	// PlatformUnknown is the fallback for unrecognized platform names.
	PlatformUnknown Platform = iota
	PlatformSocialMedia
	PlatformEmail
	PlatformDisplayAds
	PlatformInStore
	PlatformAll
)

var platformNames = map[Platform]string{
	PlatformSocialMedia: "Social Media",
	PlatformEmail:       "Email",
	PlatformDisplayAds:  "Display Ads",
	PlatformInStore:     "In-Store",
	PlatformAll:         "All Platforms",
}

// Platforms lists every known platform in display order.
func Platforms() []Platform {
	return []Platform{PlatformSocialMedia, PlatformEmail, PlatformDisplayAds, PlatformInStore, PlatformAll}
}

// ParsePlatform maps a display name to a Platform. Matching ignores case
// and surrounding whitespace; anything else yields PlatformUnknown.
func ParsePlatform(s string) Platform {
	return parseCategory(s, platformNames, PlatformUnknown)
}

func (p Platform) String() string { return categoryName(p, platformNames) }

// Known reports whether p is one of the enumerated platforms.
func (p Platform) Known() bool {
	_, ok := platformNames[p]
	return ok
}

// MarshalText encodes the display name.
func (p Platform) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText never fails; unrecognized names decode to PlatformUnknown.
func (p *Platform) UnmarshalText(b []byte) error {
	*p = ParsePlatform(string(b))
	return nil
}

// Audience is the shopper segment a campaign is written for.
type Audience int

const (
	// AudienceUnknown is the fallback for unrecognized segment names.
	AudienceUnknown Audience = iota
	AudienceClubcardMembers
	AudienceYoungFamilies
	AudiencePremiumShoppers
	AudienceBudgetConscious
	AudienceHealthFocused
)

var audienceNames = map[Audience]string{
	AudienceClubcardMembers: "Clubcard Members",
	AudienceYoungFamilies:   "Young Families",
	AudiencePremiumShoppers: "Premium Shoppers",
	AudienceBudgetConscious: "Budget Conscious",
	AudienceHealthFocused:   "Health Focused",
}

// Audiences lists every known audience in display order.
func Audiences() []Audience {
	return []Audience{AudienceClubcardMembers, AudienceYoungFamilies, AudiencePremiumShoppers, AudienceBudgetConscious, AudienceHealthFocused}
}

// ParseAudience maps a display name to an Audience.
func ParseAudience(s string) Audience {
	return parseCategory(s, audienceNames, AudienceUnknown)
}

func (a Audience) String() string { return categoryName(a, audienceNames) }

// Known reports whether a is one of the enumerated audiences.
func (a Audience) Known() bool {
	_, ok := audienceNames[a]
	return ok
}

// MarshalText encodes the display name.
func (a Audience) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText never fails; unrecognized names decode to AudienceUnknown.
func (a *Audience) UnmarshalText(b []byte) error {
	*a = ParseAudience(string(b))
	return nil
}

// Tone is the voice the copy is written in.
type Tone int

const (
	// ToneUnknown is the fallback for unrecognized tone names.
	ToneUnknown Tone = iota
	ToneProfessional
	ToneFriendly
	ToneUrgent
	TonePlayful
	ToneLuxury
)

var toneNames = map[Tone]string{
	ToneProfessional: "Professional",
	ToneFriendly:     "Friendly",
	ToneUrgent:       "Urgent",
	TonePlayful:      "Playful",
	ToneLuxury:       "Luxury",
}

// Tones lists every known tone in display order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneFriendly, ToneUrgent, TonePlayful, ToneLuxury}
}

// ParseTone maps a display name to a Tone. Compound variant labels such as
// "Urgent & Action-Oriented" resolve by their leading word.
func ParseTone(s string) Tone {
	if t := parseCategory(s, toneNames, ToneUnknown); t != ToneUnknown {
		return t
	}
	head, _, found := strings.Cut(s, "&")
	if !found {
		return ToneUnknown
	}
	return parseCategory(head, toneNames, ToneUnknown)
}

func (t Tone) String() string { return categoryName(t, toneNames) }

// Known reports whether t is one of the enumerated tones.
func (t Tone) Known() bool {
	_, ok := toneNames[t]
	return ok
}

// MarshalText encodes the display name.
func (t Tone) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText never fails; unrecognized names decode to ToneUnknown.
func (t *Tone) UnmarshalText(b []byte) error {
	*t = ParseTone(string(b))
	return nil
}

func parseCategory[T comparable](s string, names map[T]string, fallback T) T {
	s = strings.TrimSpace(s)
	for k, name := range names {
		if strings.EqualFold(name, s) {
			return k
		}
	}
	return fallback
}

func categoryName[T comparable](v T, names map[T]string) string {
	if name, ok := names[v]; ok {
		return name
	}
	return "Unknown"
}
