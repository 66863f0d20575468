package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sweetshop/internal/config"
	"sweetshop/internal/db"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

// sampleCatalog is the demo inventory seeded into an empty shop.
var sampleCatalog = []model.Sweet{
	{Name: "Gulab Jamun", Category: "Indian", Price: 50, Quantity: 10},
	{Name: "Rasgulla", Category: "Indian", Price: 40, Quantity: 15},
	{Name: "Kaju Katli", Category: "Indian", Price: 90, Quantity: 8},
	{Name: "Chocolate Truffle", Category: "Chocolate", Price: 120, Quantity: 12},
	{Name: "Vanilla Fudge", Category: "Fudge", Price: 60, Quantity: 20},
	{Name: "Lemon Drop", Category: "Candy", Price: 15, Quantity: 50},
}

func main() {
	logrus.Info("starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Sweet{}); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	sweetRepo := repository.NewSweetRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("seed admin: %v", err)
	}

	created, err := seedCatalog(ctx, gormDB, sweetRepo)
	if err != nil {
		logrus.Fatalf("seed catalog: %v", err)
	}

	logrus.Infof("seed completed: admin %s ready, %d sweets created", cfg.AdminEmail, created)
}

// seedAdmin creates the admin user if missing, or promotes an existing user
// with the configured email. Idempotent across runs.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) error {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	if existing != nil {
		if existing.Role == model.RoleAdmin {
			return nil
		}
		existing.Role = model.RoleAdmin
		return repo.Update(ctx, existing)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return repo.Create(ctx, &model.User{
		Name:         "Shop Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	})
}

// seedCatalog inserts the sample sweets, skipping names that already exist.
func seedCatalog(ctx context.Context, gormDB *gorm.DB, repo repository.SweetRepository) (int, error) {
	created := 0
	for _, sweet := range sampleCatalog {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Sweet{}).
			Where("name = ?", sweet.Name).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		s := sweet
		if err := repo.Create(ctx, &s); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
