package models

import "fmt"

// ActivityType is the closed set of actions a user can log.
type ActivityType string

const (
	ActivityCall            ActivityType = "CALL"
	ActivityVisit           ActivityType = "VISIT"
	ActivityValuation       ActivityType = "VALUATION"
	ActivityNewsItem        ActivityType = "NEWS_ITEM"
	ActivityAssignment      ActivityType = "ASSIGNMENT"
	ActivityTenantLocated   ActivityType = "TENANT_LOCATED"
	ActivityPhoneAdded      ActivityType = "PHONE_ADDED"
	ActivityEmptyProperty   ActivityType = "EMPTY_PROPERTY"
	ActivityPropertyCreated ActivityType = "PROPERTY_CREATED"
	ActivityOther           ActivityType = "OTHER"
)

// ActivityTypes lists every known activity type.
var ActivityTypes = []ActivityType{
	ActivityCall,
	ActivityVisit,
	ActivityValuation,
	ActivityNewsItem,
	ActivityAssignment,
	ActivityTenantLocated,
	ActivityPhoneAdded,
	ActivityEmptyProperty,
	ActivityPropertyCreated,
	ActivityOther,
}

// GoalCategory buckets goals; an activity counts toward goals of its type's category.
type GoalCategory string

const (
	CategoryActivity        GoalCategory = "ACTIVITY"
	CategoryDPV             GoalCategory = "DPV"
	CategoryNews            GoalCategory = "NEWS"
	CategoryAssignment      GoalCategory = "ASSIGNMENT"
	CategoryLocatedTenants  GoalCategory = "LOCATED_TENANTS"
	CategoryAddedPhones     GoalCategory = "ADDED_PHONES"
	CategoryEmptyProperties GoalCategory = "EMPTY_PROPERTIES"
	CategoryNewProperties   GoalCategory = "NEW_PROPERTIES"
	CategoryGeneral         GoalCategory = "GENERAL"
)

// GoalCategories lists every known goal category.
var GoalCategories = []GoalCategory{
	CategoryActivity,
	CategoryDPV,
	CategoryNews,
	CategoryAssignment,
	CategoryLocatedTenants,
	CategoryAddedPhones,
	CategoryEmptyProperties,
	CategoryNewProperties,
	CategoryGeneral,
}

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	_, err := t.Category()
	return err == nil
}

// Category returns the goal category an activity of this type counts toward.
// Every entry of ActivityTypes must have a case here.
func (t ActivityType) Category() (GoalCategory, error) {
	switch t {
	case ActivityCall, ActivityVisit:
		return CategoryActivity, nil
	case ActivityValuation:
		return CategoryDPV, nil
	case ActivityNewsItem:
		return CategoryNews, nil
	case ActivityAssignment:
		return CategoryAssignment, nil
	case ActivityTenantLocated:
		return CategoryLocatedTenants, nil
	case ActivityPhoneAdded:
		return CategoryAddedPhones, nil
	case ActivityEmptyProperty:
		return CategoryEmptyProperties, nil
	case ActivityPropertyCreated:
		return CategoryNewProperties, nil
	case ActivityOther:
		return CategoryGeneral, nil
	}
	return "", fmt.Errorf("unknown activity type %q", string(t))
}

// Valid reports whether c is one of the known goal categories.
func (c GoalCategory) Valid() bool {
	for _, known := range GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidateCategoryMapping fails when an activity type has no goal category or maps
// to a category that is not registered. Called at startup.
func ValidateCategoryMapping() error {
	for _, t := range ActivityTypes {
		c, err := t.Category()
		if err != nil {
			return err
		}
		if !c.Valid() {
			return fmt.Errorf("activity type %s maps to unregistered category %s", t, c)
		}
	}
	return nil
}
