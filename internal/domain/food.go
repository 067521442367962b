package domain

// Immutable catalog entry: a named food and its energy value in kcal.
// Names and calorie values are not unique; duplicates are legal and
// may be selected repeatedly.
type FoodItem struct {
	Name     string `json:"name" yaml:"name"`
	Calories int    `json:"calories" yaml:"calories"`
}

// Fixed column contract for tabular catalog sources.
const (
	NameColumn    = "Nama_Makanan"
	CalorieColumn = "Kalori_kcal"
)

// RequiredColumns returns the column names every catalog source must carry.
func RequiredColumns() []string {
	return []string{NameColumn, CalorieColumn}
}
