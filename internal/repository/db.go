package repository

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the postgres pool and wraps it in gorm.
func InitDB(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// pool sizing
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Genre{},
		&model.Tag{},
		&model.Title{},
		&model.Episode{},
		&model.Comment{},
		&model.Favorite{},
		&model.TeamMember{},
	)
}

// Repositories groups every repository over one connection.
type Repositories struct {
	DB         *gorm.DB
	User       *UserRepository
	Session    *SessionRepository
	Title      *TitleRepository
	Episode    *EpisodeRepository
	Comment    *CommentRepository
	Favorite   *FavoriteRepository
	TeamMember *TeamMemberRepository
	Metadata   *MetadataRepository
}

// NewRepositories builds the repository set. allowedHosts is the player
// host allow-list enforced on every episode write.
func NewRepositories(db *gorm.DB, allowedHosts []string) *Repositories {
	return &Repositories{
		DB:         db,
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Title:      NewTitleRepository(db),
		Episode:    NewEpisodeRepository(db, allowedHosts),
		Comment:    NewCommentRepository(db),
		Favorite:   NewFavoriteRepository(db),
		TeamMember: NewTeamMemberRepository(db),
		Metadata:   NewMetadataRepository(db),
	}
}
