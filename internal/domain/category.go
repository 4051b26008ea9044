package domain

import (
	"fmt"
	"strings"
)

// Category identifies a guided practice. The string value is what the API
// stores in progress records.
type Category string

const (
	CategoryMeditation Category = "meditation"
	CategoryAnxiety    Category = "anxiety-management"
	CategorySleep      Category = "sleep-hygiene"
	CategorySelfCare   Category = "self-care"
	CategoryStress     Category = "stress-relief"
)

// Categories lists the practice categories in display order.
var Categories = []Category{
	CategoryMeditation,
	CategoryAnxiety,
	CategorySleep,
	CategorySelfCare,
	CategoryStress,
}

var categoryAliases = map[string]Category{
	"meditation":         CategoryMeditation,
	"meditate":           CategoryMeditation,
	"anxiety":            CategoryAnxiety,
	"anxiety-management": CategoryAnxiety,
	"sleep":              CategorySleep,
	"sleep-hygiene":      CategorySleep,
	"self-care":          CategorySelfCare,
	"selfcare":           CategorySelfCare,
	"stress":             CategoryStress,
	"stress-relief":      CategoryStress,
}

// ParseCategory resolves a category name or short alias, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown practice category %q", s)
	}
	return c, nil
}

// UserType is the account role sent alongside the email at login.
type UserType string

const (
	UserTeen   UserType = "teen"
	UserParent UserType = "parent"
)

// ValidUserTypes is the canonical set of accepted user type strings.
var ValidUserTypes = map[string]bool{
	"teen": true, "parent": true,
}

// ParseUserType resolves "teen" or "parent", case-insensitively.
func ParseUserType(s string) (UserType, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if !ValidUserTypes[t] {
		return "", fmt.Errorf("unknown user type %q (want teen or parent)", s)
	}
	return UserType(t), nil
}
