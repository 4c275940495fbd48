// Package entitlement maps a subscription plan to the features and limits it
// unlocks. This table is the single authority; handlers must not hard-code
// plan checks anywhere else.
package entitlement

import "strings"

const (
	PlanBasico       = "basico"
	PlanProfissional = "profissional"
	PlanAvancado     = "avancado"
	PlanPremium      = "premium"
)

// MaxProfessionalsUnlimited is the sentinel cap for the premium tier.
const MaxProfessionalsUnlimited = 999

// Entitlement is the resolved feature set for one plan tier.
type Entitlement struct {
	MaxProfessionals   int
	OnlineBooking      bool
	Whatsapp           bool
	BufferTimeAllowed  bool
	WaitingListAllowed bool
	ReviewsAllowed     bool
	AnalyticsAllowed   bool
	AuditLogAllowed    bool
}

var tiers = map[string]Entitlement{
	PlanBasico: {
		MaxProfessionals: 1,
	},
	PlanProfissional: {
		MaxProfessionals: 3,
		OnlineBooking:    true,
		Whatsapp:         true,
	},
	PlanAvancado: {
		MaxProfessionals:   5,
		OnlineBooking:      true,
		Whatsapp:           true,
		BufferTimeAllowed:  true,
		WaitingListAllowed: true,
		ReviewsAllowed:     true,
		AnalyticsAllowed:   true,
	},
	PlanPremium: {
		MaxProfessionals:   MaxProfessionalsUnlimited,
		OnlineBooking:      true,
		Whatsapp:           true,
		BufferTimeAllowed:  true,
		WaitingListAllowed: true,
		ReviewsAllowed:     true,
		AnalyticsAllowed:   true,
		AuditLogAllowed:    true,
	},
}

// ForSlug resolves the entitlements of a plan slug. Unknown or empty slugs
// fall back to the most restrictive tier so a misconfigured plan never grants
// paid features.
func ForSlug(slug string) Entitlement {
	if e, ok := tiers[strings.ToLower(strings.TrimSpace(slug))]; ok {
		return e
	}
	return tiers[PlanBasico]
}
