// Command seed resets the catalog tables and loads the starter data
// set: the menu, the gallery and the team page. Orders, reservations
// and messages are left alone.
package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db"
	"github.com/minithai/minithai-backend/pkg/db/models"
	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() { _ = dbClient.Close() }()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(ctx, "extracting sql.DB failed", err)
		os.Exit(1)
	}
	if err := migrate.Run(ctx, sqlDB, cfg.DB.Driver); err != nil {
		logg.Error(ctx, "running migrations failed", err)
		os.Exit(1)
	}

	// One transaction: a reseed either lands whole or not at all.
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(menuItems()).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		if err := tx.Create(galleryImages()).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.StaffMember{}).Error; err != nil {
			return err
		}
		return tx.Create(staffMembers()).Error
	})
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "driver", cfg.DB.Driver)
	logg.Info(ctx, "seed completed")
}

func menuItems() []models.MenuItem {
	type dish struct {
		name, category, price, descEN, descTH, image string
		vegetarian                                   bool
		spicy                                        int
	}
	dishes := []dish{
		{"Som Tam", "salads", "18.90", "Green papaya salad with chili, lime and peanuts", "ส้มตำ", "som-tam.jpg", true, 3},
		{"Larb Gai", "salads", "17.50", "Minced chicken salad with roasted rice and mint", "ลาบไก่", "larb-gai.jpg", false, 2},
		{"Tom Yum Goong", "soups", "14.50", "Hot and sour prawn soup with lemongrass", "ต้มยำกุ้ง", "tom-yum.jpg", false, 3},
		{"Tom Kha Gai", "soups", "13.50", "Chicken in coconut galangal broth", "ต้มข่าไก่", "tom-kha.jpg", false, 1},
		{"Pad Thai", "mains", "16.50", "Stir-fried rice noodles with tamarind, egg and peanuts", "ผัดไทย", "pad-thai.jpg", false, 1},
		{"Pad Krapow Moo", "mains", "17.00", "Pork stir-fried with holy basil, fried egg on rice", "ผัดกะเพราหมู", "pad-krapow.jpg", false, 2},
		{"Gaeng Keow Wan", "curries", "18.50", "Green curry with chicken and Thai eggplant", "แกงเขียวหวาน", "green-curry.jpg", false, 2},
		{"Massaman Nuea", "curries", "19.90", "Slow-braised beef massaman with potatoes", "มัสมั่นเนื้อ", "massaman.jpg", false, 1},
		{"Gaeng Phed Ped Yang", "curries", "21.00", "Roast duck red curry with pineapple", "แกงเผ็ดเป็ดย่าง", "duck-curry.jpg", false, 2},
		{"Pad Pak Ruam", "mains", "14.00", "Wok-fried mixed vegetables in oyster-style sauce", "ผัดผักรวม", "pad-pak.jpg", true, 0},
		{"Khao Niao Mamuang", "desserts", "9.50", "Mango with sticky rice and coconut cream", "ข้าวเหนียวมะม่วง", "mango-sticky-rice.jpg", true, 0},
		{"Kluay Tod", "desserts", "8.00", "Crispy fried banana with honey", "กล้วยทอด", "fried-banana.jpg", true, 0},
		{"Thai Iced Tea", "drinks", "5.50", "Sweet spiced tea with condensed milk", "ชาเย็น", "thai-tea.jpg", true, 0},
		{"Fresh Coconut", "drinks", "6.00", "Chilled young coconut", "มะพร้าวสด", "coconut.jpg", true, 0},
	}

	items := make([]models.MenuItem, 0, len(dishes))
	for _, d := range dishes {
		items = append(items, models.MenuItem{
			ID:            uuid.New(),
			Name:          d.name,
			Category:      d.category,
			Price:         decimal.RequireFromString(d.price),
			DescriptionEN: d.descEN,
			DescriptionTH: d.descTH,
			Vegetarian:    d.vegetarian,
			SpicyLevel:    d.spicy,
			Image:         "/images/menu/" + d.image,
		})
	}
	return items
}

func galleryImages() []models.GalleryImage {
	titles := []string{
		"Dining room", "Open kitchen", "Street-food corner",
		"Chef's table", "Terrace at dusk",
	}
	images := make([]models.GalleryImage, 0, len(titles))
	for i, title := range titles {
		images = append(images, models.GalleryImage{
			ID:       uuid.New(),
			Title:    title,
			URL:      "/images/gallery/" + uuid.NewString() + ".jpg",
			Position: i,
		})
	}
	return images
}

func staffMembers() []models.StaffMember {
	type member struct {
		name, role, bio string
	}
	team := []member{
		{"Nok Srisuwan", "Head Chef", "Twenty years of Bangkok street kitchens before opening ours."},
		{"Mali Thongdee", "Sous Chef", "Runs the curry station and the spice cellar."},
		{"Somchai Prasert", "Front of House", "Knows every regular's usual order."},
	}
	members := make([]models.StaffMember, 0, len(team))
	for i, m := range team {
		members = append(members, models.StaffMember{
			ID:       uuid.New(),
			Name:     m.name,
			Role:     m.role,
			Bio:      m.bio,
			Photo:    "/images/team/" + uuid.NewString() + ".jpg",
			Position: i,
		})
	}
	return members
}
