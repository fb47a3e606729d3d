package dashboard

// FallbackColor is used for custom categories without a palette entry.
const FallbackColor = "#A9B6C0"

// TrendColor is the single color of the spending trend series.
const TrendColor = "#1A9CB0"

var categoryColors = map[string]string{
	"Food & Dining":     "#FF7F50",
	"Shopping":          "#FFD166",
	"Housing":           "#6A0572",
	"Transportation":    "#1A9CB0",
	"Entertainment":     "#7B68EE",
	"Health & Fitness":  "#3AE374",
	"Personal Care":     "#FF6B6B",
	"Education":         "#4ECDC4",
	"Gifts & Donations": "#FF71CE",
	"Bills & Utilities": "#7A8C98",
	"Travel":            "#A06CD5",
	"Income":            "#3AE374",
	"Transfer":          "#7A8C98",
	"Uncategorized":     "#A9B6C0",
}

// ColorFor returns the display color of a category name.
func ColorFor(name string) string {
	if color, ok := categoryColors[name]; ok {
		return color
	}
	return FallbackColor
}
