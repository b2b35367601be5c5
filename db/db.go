package db

import (
	"fmt"
	"log"
	"os"

	"memoflow/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvitation{},
		&models.Memo{},
		&models.Tag{},
		&models.MemoTag{},
		&models.SearchLog{},
	); err != nil {
		return err
	}

	// 同一 (team, email) 最多一条 pending 邀请
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_pending_per_email
	  ON %s (team_id, email)
	  WHERE status = 'pending';
	`, models.InvitationTable, models.InvitationTable)).Error; err != nil {
		return err
	}

	// 查询收件箱更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_email_createdat
	  ON %s (email, created_at);
	`, models.InvitationTable, models.InvitationTable)).Error; err != nil {
		return err
	}

	return nil
}
