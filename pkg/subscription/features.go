package subscription

type PlanType string
type Feature string

const (
	StarterPlan PlanType = "STARTER"
	GrowthPlan  PlanType = "GROWTH"
	ScalePlan   PlanType = "SCALE"
)

const (
	InquiryForm      Feature = "inquiry_form"
	InquiryAnalytics Feature = "inquiry_analytics"
	BulkOperations   Feature = "bulk_operations"
	WhatsAppButton   Feature = "whatsapp_button"
	MaxHostels       Feature = "max_hostels"
	MaxImages        Feature = "max_images"
	EmailSupport     Feature = "email_support"
	PrioritySupport  Feature = "priority_support"
)

type PlanLimits struct {
	MaxHostels         int
	MaxImagesPerHostel int
	AllowedFeatures    map[Feature]bool
}

var PlanFeatures = map[PlanType]PlanLimits{
	StarterPlan: {
		MaxHostels:         1,
		MaxImagesPerHostel: 5,
		AllowedFeatures: map[Feature]bool{
			InquiryForm:      true,
			InquiryAnalytics: false,
			BulkOperations:   false,
			WhatsAppButton:   false,
			EmailSupport:     false,
			PrioritySupport:  false,
		},
	},
	GrowthPlan: {
		MaxHostels:         5,
		MaxImagesPerHostel: 16,
		AllowedFeatures: map[Feature]bool{
			InquiryForm:      true,
			InquiryAnalytics: true,
			BulkOperations:   true,
			WhatsAppButton:   true,
			EmailSupport:     true,
			PrioritySupport:  false,
		},
	},
	ScalePlan: {
		MaxHostels:         25,
		MaxImagesPerHostel: 16,
		AllowedFeatures: map[Feature]bool{
			InquiryForm:      true,
			InquiryAnalytics: true,
			BulkOperations:   true,
			WhatsAppButton:   true,
			EmailSupport:     true,
			PrioritySupport:  true,
		},
	},
}

// Helper functions
func CanUseFeature(plan PlanType, feature Feature) bool {
	limits, exists := PlanFeatures[plan]
	if !exists {
		return false
	}
	return limits.AllowedFeatures[feature]
}

func GetPlanLimits(plan PlanType) PlanLimits {
	return PlanFeatures[plan]
}

// DeterminePlanType plan adından plan tipini belirler
func DeterminePlanType(planName string) PlanType {
	switch planName {
	case "Growth Plan":
		return GrowthPlan
	case "Scale Plan":
		return ScalePlan
	default:
		return StarterPlan
	}
}
