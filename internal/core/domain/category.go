package domain

// CategoryType separates income categories from expense categories.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// IsValid reports whether c is one of the known category types.
func (c CategoryType) IsValid() bool {
	return c == CategoryIncome || c == CategoryExpense
}

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#2ecc71"

// Category groups transactions for budgets and reports.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      string       `json:"color"`
	IconURL    string       `json:"iconURL"`
	AuditFields
}

// DefaultExpenseCategories are seeded for every new user.
var DefaultExpenseCategories = []Category{
	{Name: "Groceries", Type: CategoryExpense, Color: "#27ae60", IconURL: "https://img.icons8.com/color/96/ingredients.png"},
	{Name: "Restaurants and cafes", Type: CategoryExpense, Color: "#e67e22", IconURL: "https://img.icons8.com/color/96/restaurant.png"},
	{Name: "Transport", Type: CategoryExpense, Color: "#2980b9", IconURL: "https://img.icons8.com/color/96/car.png"},
	{Name: "Housing and bills", Type: CategoryExpense, Color: "#8e44ad", IconURL: "https://img.icons8.com/color/96/home.png"},
	{Name: "Entertainment", Type: CategoryExpense, Color: "#f39c12", IconURL: "https://img.icons8.com/color/96/popcorn.png"},
	{Name: "Health and beauty", Type: CategoryExpense, Color: "#d35400", IconURL: "https://img.icons8.com/color/96/spa.png"},
	{Name: "Education", Type: CategoryExpense, Color: "#16a085", IconURL: "https://img.icons8.com/color/96/graduation-cap.png"},
	{Name: "Travel", Type: CategoryExpense, Color: "#1abc9c", IconURL: "https://img.icons8.com/color/96/around-the-globe.png"},
	{Name: "Gifts", Type: CategoryExpense, Color: "#c0392b", IconURL: "https://img.icons8.com/color/96/gift.png"},
	{Name: "Hobby and sport", Type: CategoryExpense, Color: "#9b59b6", IconURL: "https://img.icons8.com/color/96/dumbbell.png"},
}
