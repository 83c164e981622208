package model

import "maitri-medico/pkg/validator"

// Categories must stay in sync with the storefront's category routes.
var Categories = []string{
	"antiAnxiety",
	"antidepressants",
	"moodStabilizers",
	"antipsychotics",
	"sleepRelaxationAids",
	"cognitiveFocusEnhancers",
	"naturalHerbalMentalWellness",
	"vitaminsNutritionalSupport",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}

func init() {
	validator.RegisterStringRule("category", IsValidCategory)
}
