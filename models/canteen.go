package models

// Canteen is registered once and immutable afterwards except for theming.
type Canteen struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Campus     string `json:"campus"`
	ThemeColor string `json:"theme_color"`
}

// ThemeGradients are the styles a new canteen is randomly assigned from.
var ThemeGradients = []string{
	"from-blue-500 to-indigo-600",
	"from-amber-600 to-orange-600",
	"from-red-500 to-pink-600",
	"from-green-500 to-emerald-600",
	"from-purple-500 to-violet-600",
}
