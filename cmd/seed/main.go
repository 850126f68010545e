package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ordo/internal/config"
	"ordo/internal/db"
	"ordo/internal/model"
)

const demoPassword = "password123"

type seedUser struct {
	email     string
	firstName string
	lastName  string
	isAdmin   bool
	isOwner   bool
}

var seedUsers = []seedUser{
	{email: "owner@example.com", firstName: "Olivia", lastName: "Owens", isAdmin: true, isOwner: true},
	{email: "admin@example.com", firstName: "Andre", lastName: "Adams", isAdmin: true},
	{email: "member@example.com", firstName: "Morgan", lastName: "Mills"},
	{email: "member2@example.com", firstName: "Riley", lastName: "Reyes"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Chapter{},
		&model.User{},
		&model.PendingRegistration{},
		&model.Meal{},
		&model.Review{},
		&model.MealAttendance{},
		&model.LatePlate{},
		&model.Recommendation{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	chapter := seedChapter(gormDB)
	users := seedMembers(gormDB, chapter.ID)
	seedMeals(gormDB, chapter.ID, users)

	log.Println("Seed completed")
	log.Printf("Demo login: owner@example.com / %s", demoPassword)
}

func seedChapter(gormDB *gorm.DB) *model.Chapter {
	accessCode := "demo-chapter"
	chapter := &model.Chapter{Name: "Demo Chapter"}
	if err := gormDB.Where("name = ?", chapter.Name).
		Attrs(&model.Chapter{AccessCode: &accessCode}).
		FirstOrCreate(chapter).Error; err != nil {
		log.Fatalf("Failed to seed chapter: %v", err)
	}
	log.Printf("Chapter %q ready (id=%d)", chapter.Name, chapter.ID)
	return chapter
}

func seedMembers(gormDB *gorm.DB, chapterID uint) []model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := make([]model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user := model.User{Email: su.email}
		if err := gormDB.Where("email = ?", su.email).
			Attrs(&model.User{
				PasswordHash: string(hash),
				FirstName:    su.firstName,
				LastName:     su.lastName,
				IsAdmin:      su.isAdmin,
				IsOwner:      su.isOwner,
				ChapterID:    &chapterID,
			}).
			FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.email, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d members", len(users))
	return users
}

func seedMeals(gormDB *gorm.DB, chapterID uint, members []model.User) {
	var count int64
	if err := gormDB.Model(&model.Meal{}).Where("chapter_id = ?", chapterID).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count meals: %v", err)
	}
	if count > 0 {
		log.Printf("Meals already seeded (%d present), skipping", count)
		return
	}

	cutoff := 3
	now := time.Now()
	dishes := []struct {
		offset int
		hour   int
		kind   string
		dish   string
	}{
		{offset: 0, hour: 18, kind: "dinner", dish: "Chicken parmesan"},
		{offset: 1, hour: 12, kind: "lunch", dish: "Turkey club sandwiches"},
		{offset: 1, hour: 18, kind: "dinner", dish: "Beef tacos"},
		{offset: 2, hour: 18, kind: "dinner", dish: "Vegetable stir fry"},
		{offset: 3, hour: 18, kind: "dinner", dish: "Spaghetti and meatballs"},
	}

	for _, d := range dishes {
		day := now.AddDate(0, 0, d.offset)
		meal := model.Meal{
			ChapterID:            chapterID,
			MealDate:             time.Date(day.Year(), day.Month(), day.Day(), d.hour, 0, 0, 0, day.Location()),
			MealType:             d.kind,
			DishName:             d.dish,
			LatePlateHoursBefore: &cutoff,
		}
		if err := gormDB.Create(&meal).Error; err != nil {
			log.Fatalf("Failed to seed meal %q: %v", d.dish, err)
		}
		for _, member := range members {
			row := model.MealAttendance{
				MealID:    meal.ID,
				UserID:    member.ID,
				Confirmed: model.AttendanceUnresolved,
			}
			if err := gormDB.Create(&row).Error; err != nil {
				log.Fatalf("Failed to seed attendance for meal %d: %v", meal.ID, err)
			}
		}
	}
	log.Printf("Seeded %d meals with full attendance fan-out", len(dishes))
}
