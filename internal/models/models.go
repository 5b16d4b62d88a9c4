package models

type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

// Product categories accepted by the API.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryFood        = "Food"
)

var Categories = []string{CategoryElectronics, CategoryClothing, CategoryFood}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// DateAdded keeps the ISO-8601 string exactly as the client sent it; the
// server validates it but never reinterprets it.
type Product struct {
	ID        int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"not null"                 json:"name"`
	Price     float64 `gorm:"not null"                 json:"price"`
	DateAdded string  `gorm:"not null"                 json:"dateAdded"`
	Category  string  `gorm:"not null"                 json:"category"`
}
