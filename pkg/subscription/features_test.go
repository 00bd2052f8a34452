package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanUseFeature(t *testing.T) {
	assert.True(t, CanUseFeature(StarterPlan, InquiryForm))
	assert.False(t, CanUseFeature(StarterPlan, InquiryAnalytics))
	assert.False(t, CanUseFeature(StarterPlan, BulkOperations))

	assert.True(t, CanUseFeature(GrowthPlan, InquiryAnalytics))
	assert.True(t, CanUseFeature(ScalePlan, BulkOperations))

	assert.False(t, CanUseFeature(PlanType("unknown"), InquiryForm))
}

func TestDeterminePlanType(t *testing.T) {
	assert.Equal(t, GrowthPlan, DeterminePlanType("Growth Plan"))
	assert.Equal(t, ScalePlan, DeterminePlanType("Scale Plan"))
	assert.Equal(t, StarterPlan, DeterminePlanType("Starter Plan"))
	assert.Equal(t, StarterPlan, DeterminePlanType("anything else"))
}

func TestPlanLimits(t *testing.T) {
	assert.Equal(t, 1, GetPlanLimits(StarterPlan).MaxHostels)
	assert.Equal(t, 5, GetPlanLimits(GrowthPlan).MaxHostels)
	assert.Equal(t, 25, GetPlanLimits(ScalePlan).MaxHostels)
}
