package db

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed 在空库中写入初始站点内容；已有配置时不做任何事。
func Seed(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&SiteSetting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count site settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		settings := SiteSetting{
			Name:           "Xdiner",
			Tagline:        "Modern Fast Food Reimagined",
			PrimaryColor:   "#ef4444",
			Theme:          "modern",
			Font:           "sans",
			SEOTitle:       "Xdiner | Best Fast Food in Town",
			SEODescription: "High-quality ingredients, fast service, and a modern dining experience for local foodies.",
		}
		settings.ID = SiteSettingID
		if err := tx.Create(&settings).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}

		hours := []OperatingHour{
			{Position: 1, DayLabel: "Mon-Fri", TimeLabel: "10:00 AM - 10:00 PM"},
			{Position: 2, DayLabel: "Sat-Sun", TimeLabel: "09:00 AM - 11:00 PM"},
		}
		if err := tx.Create(&hours).Error; err != nil {
			return fmt.Errorf("seed hours: %w", err)
		}

		menu := []MenuItem{
			{Name: "Signature X-Burger", Price: 12.99, Category: CategoryMains, Description: "Wagyu beef, secret X-sauce, brioche bun.", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&q=80&w=400"},
			{Name: "Truffle Parm Fries", Price: 6.50, Category: CategorySides, Description: "Hand-cut potatoes, white truffle oil, fresh parmesan.", Image: "https://images.unsplash.com/photo-1573080496219-bb080dd4f877?auto=format&fit=crop&q=80&w=400"},
			{Name: "Spicy Buffalo Wings", Price: 9.99, Category: CategoryAppetizers, Description: "8 pieces, house-made buffalo glaze, celery sticks.", Image: "https://images.unsplash.com/photo-1527477396000-e27163b481c2?auto=format&fit=crop&q=80&w=400"},
			{Name: "Matcha Milkshake", Price: 7.00, Category: CategoryDrinks, Description: "Ceremonial grade matcha, vanilla bean ice cream.", Image: "https://images.unsplash.com/photo-1572490122747-3968b75cc699?auto=format&fit=crop&q=80&w=400"},
		}
		for i := range menu {
			menu[i].ID = uint(i + 1)
		}
		if err := tx.Create(&menu).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}

		reservation := Reservation{
			Name:             "John Doe",
			Email:            "john@example.com",
			Date:             "2024-05-20",
			Time:             "19:00",
			Guests:           2,
			Status:           ReservationPending,
			ConfirmationCode: uuid.New().String(),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("seed reservations: %w", err)
		}

		inquiry := Inquiry{
			Name:    "Jane Smith",
			Subject: "Catering",
			Message: "Do you offer office catering?",
			Date:    "2024-05-18",
		}
		if err := tx.Create(&inquiry).Error; err != nil {
			return fmt.Errorf("seed inquiries: %w", err)
		}

		post := BlogPost{
			Title:   "Our Local Farm Partnerships",
			Date:    "May 15, 2024",
			Content: "We believe in sourcing locally to provide the freshest fast food experience...",
			Image:   "https://images.unsplash.com/photo-1500651230702-0e2d8a49d4ad?auto=format&fit=crop&q=80&w=400",
		}
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("seed blog posts: %w", err)
		}

		return nil
	})
}
