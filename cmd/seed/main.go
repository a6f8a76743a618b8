package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasklist/internal/config"
	"tasklist/internal/db"
	"tasklist/internal/model"
	"tasklist/internal/repository"
)

type seedUser struct {
	Username string
	Password string
}

var seedUsers = []seedUser{
	{Username: "admin", Password: "admin123"},
	{Username: "demo", Password: "demo123"},
}

var seedTasks = []model.Task{
	{Name: "Write project README", IsPublic: true},
	{Name: "Review pull requests", IsPublic: true},
	{Name: "Rotate signing secret", IsPublic: false},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	created := 0
	for _, su := range seedUsers {
		if _, err := userRepo.FindByUsername(ctx, su.Username); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %q: %v", su.Username, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{Username: su.Username, PasswordHash: string(hashed)}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", su.Username, err)
		}
		created++
	}
	log.Printf("Seeded %d users (%d already present)", created, len(seedUsers)-created)

	existing, err := taskRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Tasks already present (%d), skipping task seed", len(existing))
		return
	}

	for i := range seedTasks {
		task := seedTasks[i]
		if err := taskRepo.Create(ctx, &task); err != nil {
			log.Fatalf("Failed to create task %q: %v", task.Name, err)
		}
	}
	log.Printf("Seeded %d tasks", len(seedTasks))
}
