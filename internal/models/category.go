package models

// Category is a row of the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Type       string `db:"type"`
	Color      string `db:"color"`
	IconURL    string `db:"icon_url"`
	AuditFields
}
