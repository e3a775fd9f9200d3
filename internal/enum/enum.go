package enum

// ── Supported display languages ──

const (
	LanguageEnglish = "en"
	LanguagePersian = "fa"
)

// DefaultLanguage is used when a menu request carries no lang parameter.
// The public site routes visitors to the Persian menu first.
const DefaultLanguage = LanguagePersian

// IsLanguage reports whether code is a supported language code.
func IsLanguage(code string) bool {
	return code == LanguageEnglish || code == LanguagePersian
}

// ── Roles ──

const RoleAdmin = "ADMIN"

// ── WebSocket event types ──

const (
	EventMenuUpdated       = "menu.updated"
	EventCategoriesUpdated = "categories.updated"
)

// ── Predefined categories ──
// Shipped with every installation; protected from deletion through the API.

const (
	CategoryBreakfast    = "breakfast"
	CategoryHotCoffee    = "hot-coffee"
	CategoryColdCoffee   = "cold-coffee"
	CategoryMocktails    = "mocktails"
	CategorySmoothies    = "smoothies"
	CategoryMilkshakes   = "milkshakes"
	CategoryHotDrinks    = "hot-drinks"
	CategoryColdBrews    = "cold-brews"
	CategoryHerbalTea    = "herbal-tea"
	CategoryCakeDesserts = "cake-desserts"
)

// PredefinedCategories is the seed order for a fresh installation.
var PredefinedCategories = []string{
	CategoryBreakfast,
	CategoryHotCoffee,
	CategoryColdCoffee,
	CategoryMocktails,
	CategorySmoothies,
	CategoryMilkshakes,
	CategoryHotDrinks,
	CategoryColdBrews,
	CategoryHerbalTea,
	CategoryCakeDesserts,
}
