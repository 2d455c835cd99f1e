package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/logger"
	"github.com/phrazzld/physref/internal/store"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// userRecord is the gorm model of the users table. The schema itself is
// owned by the goose migrations.
type userRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

// SQLiteUserStore implements store.UserStore on top of gorm.
type SQLiteUserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Ensure SQLiteUserStore implements store.UserStore interface
var _ store.UserStore = (*SQLiteUserStore)(nil)

// NewSQLiteUserStore wraps an open connection from Open in a gorm session.
// If logger is nil, a default logger will be used.
func NewSQLiteUserStore(db *sql.DB, logger *slog.Logger) (*SQLiteUserStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gdb, err := gorm.Open(gormsqlite.New(gormsqlite.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &SQLiteUserStore{
		db:     gdb,
		logger: logger.With(slog.String("component", "user_store")),
	}, nil
}

// Create implements store.UserStore.Create.
func (s *SQLiteUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	rec := userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&rec)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", result.Error.Error()),
			slog.String("username", user.Username))
		return store.NewStoreError("user", "create", "insert failed", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Debug("username already exists",
			slog.String("username", user.Username))
		return store.ErrUsernameExists
	}

	user.ID = rec.ID

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *SQLiteUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.first(ctx, "username = ?", username)
}

// GetByID implements store.UserStore.GetByID.
func (s *SQLiteUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *SQLiteUserStore) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).Where(cond, arg).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", err.Error()),
			slog.Any("key", arg))
		return nil, store.NewStoreError("user", "get", "query failed", err)
	}
	return rec.toDomain(), nil
}
