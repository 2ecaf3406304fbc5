package planner

import "github.com/Jaideepo7/Meal-Planner/internal/types"

// Catalogs backing the onboarding and settings screens. The stores accept
// values outside these lists; the catalogs exist for UI layers to render
// choices, not for server-side validation.

// Cuisines lists the selectable cuisine preferences.
var Cuisines = []string{
	"Chinese",
	"Indian",
	"Italian",
	"Mexican",
	"Japanese",
	"Thai",
	"Korean",
	"Mediterranean",
	"American",
	"French",
}

// DietaryRestrictions lists the selectable dietary restrictions.
var DietaryRestrictions = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Nut Allergy",
	"Shellfish Allergy",
	"Kosher",
	"Halal",
	"Low Sodium",
	"Keto",
}

// HealthGoals lists the selectable health goals.
var HealthGoals = []string{
	"Weight Loss",
	"Muscle Gain",
	"Balanced Diet",
	"Low Carb",
	"Heart Health",
}

// CategoryInfo pairs a pantry category code with its display label.
type CategoryInfo struct {
	Code  CategoryCode
	Label string
}

// Categories lists the pantry categories in display order.
var Categories = []CategoryInfo{
	{types.CategoryVegetables, "Vegetables"},
	{types.CategoryFruits, "Fruits"},
	{types.CategoryMeatPoultry, "Meat & Poultry"},
	{types.CategorySeafood, "Seafood"},
	{types.CategoryDairy, "Dairy"},
	{types.CategoryGrainsPasta, "Grains & Pasta"},
	{types.CategoryCannedGoods, "Canned Goods"},
	{types.CategorySpicesCondiments, "Spices & Condiments"},
	{types.CategorySnacks, "Snacks"},
	{types.CategoryFrozenFoods, "Frozen Foods"},
}

// SuggestedQuestions are the templated conversation openers shown on the
// ask-AI screen. Static content; suggestions are not learned.
var SuggestedQuestions = []string{
	"What can I make with my current ingredients?",
	"Suggest a recipe for weight loss",
	"What's a good high-protein meal?",
	"Plan my meals for tomorrow",
}
