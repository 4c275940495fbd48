package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSlugTiers(t *testing.T) {
	tests := []struct {
		slug             string
		maxProfessionals int
		onlineBooking    bool
		auditLog         bool
	}{
		{PlanBasico, 1, false, false},
		{PlanProfissional, 3, true, false},
		{PlanAvancado, 5, true, false},
		{PlanPremium, MaxProfessionalsUnlimited, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			e := ForSlug(tt.slug)
			assert.Equal(t, tt.maxProfessionals, e.MaxProfessionals)
			assert.Equal(t, tt.onlineBooking, e.OnlineBooking)
			assert.Equal(t, tt.auditLog, e.AuditLogAllowed)
		})
	}
}

func TestForSlugUnknownFallsBackToBasico(t *testing.T) {
	for _, slug := range []string{"", "enterprise", "gold", "PREMIUM_PLUS"} {
		e := ForSlug(slug)
		assert.Equal(t, 1, e.MaxProfessionals, "slug %q", slug)
		assert.False(t, e.OnlineBooking, "slug %q", slug)
	}
}

func TestForSlugNormalizesCase(t *testing.T) {
	assert.Equal(t, ForSlug("premium"), ForSlug("  Premium "))
	assert.Equal(t, ForSlug("avancado"), ForSlug("AVANCADO"))
}

func TestTiersAreMonotonic(t *testing.T) {
	// Each tier must unlock at least what the one below it unlocks.
	order := []string{PlanBasico, PlanProfissional, PlanAvancado, PlanPremium}
	for i := 1; i < len(order); i++ {
		lower := ForSlug(order[i-1])
		higher := ForSlug(order[i])
		assert.GreaterOrEqual(t, higher.MaxProfessionals, lower.MaxProfessionals)
		if lower.OnlineBooking {
			assert.True(t, higher.OnlineBooking)
		}
		if lower.WaitingListAllowed {
			assert.True(t, higher.WaitingListAllowed)
		}
		if lower.ReviewsAllowed {
			assert.True(t, higher.ReviewsAllowed)
		}
	}
}
