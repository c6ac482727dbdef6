package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mardavsj/wisestudent-sub021/internals/configs"
	badgeModel "github.com/mardavsj/wisestudent-sub021/internals/features/parent/badges/model"
	gameModel "github.com/mardavsj/wisestudent-sub021/internals/features/parent/games/model"
	assignmentModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/assignments/model"
	classModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/classes/model"
	studentModel "github.com/mardavsj/wisestudent-sub021/internals/features/school/students/model"
	authModel "github.com/mardavsj/wisestudent-sub021/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// Full DSN + statement_timeout. With PgBouncer, point host/port at the
	// bouncer and leave PreferSimpleProtocol=true.
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=wisestudent&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate runs AutoMigrate for every feature model and seeds the static
// game catalog + badge configuration tables.
func Migrate() {
	if err := DB.AutoMigrate(
		&authModel.User{},
		&authModel.TokenBlacklist{},
		&classModel.Class{},
		&classModel.ClassStudent{},
		&studentModel.Student{},
		&studentModel.Invite{},
		&assignmentModel.Assignment{},
		&assignmentModel.Question{},
		&assignmentModel.AssignmentHide{},
		&assignmentModel.Submission{},
		&gameModel.Game{},
		&gameModel.GameProgress{},
		&gameModel.CoinWallet{},
		&badgeModel.BadgeConfig{},
		&badgeModel.CollectedBadge{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := gameModel.SeedGames(DB); err != nil {
		log.Fatalf("❌ Game catalog seed failed: %v", err)
	}
	if err := badgeModel.SeedBadgeConfigs(DB); err != nil {
		log.Fatalf("❌ Badge config seed failed: %v", err)
	}
	log.Println("✅ Migrations + seeds done.")
}

func WarmUpQueries() {
	// fire a light query so the pool is filled and ready
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
