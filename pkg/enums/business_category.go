package enums

import "fmt"

// BusinessCategory represents the canonical seller business categories.
type BusinessCategory string

const (
	BusinessCategoryGarments    BusinessCategory = "garments"
	BusinessCategoryHandicrafts BusinessCategory = "handicrafts"
	BusinessCategoryHomeGoods   BusinessCategory = "home_goods"
	BusinessCategoryFabric      BusinessCategory = "fabric"
	BusinessCategoryAccessories BusinessCategory = "accessories"
	BusinessCategoryOther       BusinessCategory = "other"
)

var validBusinessCategories = []BusinessCategory{
	BusinessCategoryGarments,
	BusinessCategoryHandicrafts,
	BusinessCategoryHomeGoods,
	BusinessCategoryFabric,
	BusinessCategoryAccessories,
	BusinessCategoryOther,
}

// String implements fmt.Stringer.
func (c BusinessCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known BusinessCategory.
func (c BusinessCategory) IsValid() bool {
	for _, candidate := range validBusinessCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseBusinessCategory converts raw input into a BusinessCategory.
func ParseBusinessCategory(value string) (BusinessCategory, error) {
	for _, candidate := range validBusinessCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business category %q", value)
}
