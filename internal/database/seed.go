package database

import (
	"fmt"

	"toystore/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "123456"

// Seed fills an empty database with the demo catalog and a few accounts.
// It does nothing when products already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []models.Category{
			{Name: "Construction sets", Description: "Building sets for all ages"},
			{Name: "Board games", Description: "Games for friends and family"},
			{Name: "Dolls", Description: "Dolls and accessories"},
			{Name: "Remote control", Description: "Remote controlled vehicles"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		products := []models.Product{
			seedProduct("LEGO Technic", "5999.99", 15, 1, "LEGO", "Plastic", 8, false),
			seedProduct("Monopoly Deluxe", "2499.50", 8, 2, "Hasbro", "Cardboard", 6, false),
			seedProduct("Barbie Dreamhouse", "8999.99", 5, 3, "Mattel", "Plastic", 3, false),
			seedProduct("DJI Mavic drone", "32999.99", 3, 4, "DJI", "Plastic", 14, true),
			seedProduct("Metal construction set", "3599.00", 20, 1, "Gigo", "Metal", 6, false),
			seedProduct("UNO cards", "599.00", 30, 2, "Mattel", "Cardboard", 3, false),
			seedProduct("LOL Surprise", "2499.00", 12, 3, "MGA Entertainment", "Plastic", 4, false),
			seedProduct("RC helicopter", "4599.99", 7, 4, "Syma", "Plastic", 8, true),
			seedProduct("Magformers Basic", "7990.00", 9, 1, "Magnetic", "Plastic/magnet", 3, false),
			seedProduct("Jenga Classic", "1299.00", 18, 2, "Hasbro", "Wood", 6, false),
			seedProduct("Winx Bloom doll", "1599.00", 10, 3, "Giochi Preziosi", "Plastic", 3, false),
			seedProduct("RC Lamborghini", "7599.00", 6, 4, "WLtoys", "Plastic", 8, true),
			seedProduct("LEGO Star Wars", "8999.00", 11, 1, "LEGO", "Plastic", 9, false),
			seedProduct("Scrabble Premium", "3499.00", 7, 2, "Mattel", "Plastic", 10, false),
			seedProduct("Bratz doll", "1999.00", 14, 3, "MGA Entertainment", "Plastic", 5, false),
			seedProduct("RC boat", "5999.00", 4, 4, "JJRC", "Plastic", 12, true),
			seedProduct("Tegu magnetic blocks", "11999.00", 5, 1, "Tegu", "Wood/magnet", 4, false),
			seedProduct("Catan", "4990.00", 9, 2, "Asmodee", "Cardboard", 10, false),
			seedProduct("Frozen Elsa", "2999.00", 8, 3, "Disney", "Plastic", 3, false),
			seedProduct("RC tank with IR cannon", "3899.00", 7, 4, "Heng Long", "Plastic", 10, true),
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		users := []models.User{
			{Email: "ivanov@example.com", PasswordHash: string(hash), FullName: "Ivan Ivanov", Address: "Moscow, Tverskaya st. 10, apt. 25", Phone: "+79161234567"},
			{Email: "petrova@mail.ru", PasswordHash: string(hash), FullName: "Elena Petrova", Address: "Saint Petersburg, Nevsky pr. 45", Phone: "+78125556677"},
			{Email: "sidorov@gmail.com", PasswordHash: string(hash), FullName: "Alexey Sidorov", Address: "Yekaterinburg, Lenina st. 3", Phone: "+73432897654"},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		return nil
	})
}

func seedProduct(name, price string, stock int, categoryID uint, manufacturer, material string, ageMin int, batteries bool) models.Product {
	return models.Product{
		Name:              name,
		Price:             decimal.RequireFromString(price),
		StockQuantity:     stock,
		CategoryID:        categoryID,
		Manufacturer:      manufacturer,
		Material:          material,
		AgeMin:            ageMin,
		BatteriesIncluded: batteries,
		ImageFilename:     "splash.jpg",
	}
}
