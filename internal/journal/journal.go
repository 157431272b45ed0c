package journal

import (
	"database/sql"
	"fmt"

	"github.com/refit/extension/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager handles journal database connections and writes.
type Manager struct {
	DB              *gorm.DB
	SqlDB           *sql.DB
	IsValid         bool
	ShouldSaveLocal bool
	SqliteFilePath  string
	Logger          zerolog.Logger

	// pending holds records that arrived before the DB was valid
	pending *queue.Queue[DecisionRecord]
}

// NewManager creates a new journal manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid:         false,
		ShouldSaveLocal: false,
		Logger:          log,
		pending:         queue.New[DecisionRecord](),
	}
}

// Connect establishes a database connection, falling back to SQLite if
// Postgres fails, then migrates the journal schema.
func (m *Manager) Connect() error {
	var err error

	m.DB, err = m.GetPostgresDB()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
		m.ShouldSaveLocal = true
		m.DB, err = m.GetSqliteDB(m.SqliteFilePath)
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
		m.IsValid = true
	}

	// test connection
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %s", err)
	}

	err = m.SqlDB.Ping()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to validate connection, trying SQLite")
		m.ShouldSaveLocal = true
		m.DB, err = m.GetSqliteDB(m.SqliteFilePath)
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
		m.IsValid = true
	} else {
		m.Logger.Info().Msg("Connected to database")
		m.IsValid = true
	}

	if !m.ShouldSaveLocal {
		m.SqlDB.SetMaxOpenConns(10)
	}

	if err := m.Migrate(); err != nil {
		m.IsValid = false
		return err
	}

	return nil
}

// GetPostgresDB returns a connection to the Postgres database.
func (m *Manager) GetPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)

	m.Logger.Debug().Msgf("Connecting to Postgres DB at '%s'", dsn)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the journal tables.
func (m *Manager) Migrate() error {
	if err := m.DB.AutoMigrate(DatabaseModels...); err != nil {
		return fmt.Errorf("error migrating journal schema: %w", err)
	}
	return nil
}

// StartSession writes a session marker row.
func (m *Manager) StartSession(s *SessionRecord) error {
	if !m.IsValid {
		return nil
	}
	if err := m.DB.Create(s).Error; err != nil {
		return fmt.Errorf("error recording session: %w", err)
	}
	return nil
}

// Record persists a decision. While the DB is invalid the record is
// buffered; the buffer drains on the next successful write.
func (m *Manager) Record(r DecisionRecord) error {
	if !m.IsValid {
		m.pending.Push(r)
		return nil
	}

	if !m.pending.Empty() {
		backlog := m.pending.Drain()
		if err := m.DB.Create(&backlog).Error; err != nil {
			m.Logger.Error().Err(err).Int("count", len(backlog)).
				Msg("Error flushing buffered journal records")
		}
	}

	if err := m.DB.Create(&r).Error; err != nil {
		return fmt.Errorf("error recording decision: %w", err)
	}
	return nil
}

// PendingCount returns the number of buffered records awaiting a valid DB.
func (m *Manager) PendingCount() int {
	return m.pending.Len()
}

// Close closes the underlying sql connection.
func (m *Manager) Close() error {
	if m.SqlDB != nil {
		return m.SqlDB.Close()
	}
	return nil
}
