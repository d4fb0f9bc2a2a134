package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nutrilog/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// Settings is everything the server reads from the environment.
type Settings struct {
	Port string

	DBEngine   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	JWTSecret string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	AWSRegion      string
	S3Region       string
	S3Bucket       string
	CloudFrontURL  string
	SESEmail       string
	SNSFCMArn      string
	UseRekognition bool

	NutrientsFile string
	Location      *time.Location
}

// Load reads .env when present, then the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	s := &Settings{
		Port:           envOrDefault("PORT", "8080"),
		DBEngine:       strings.ToLower(envOrDefault("DB_ENGINE", EnginePostgres)),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		SQLitePath:     envOrDefault("SQLITE_PATH", "data/nutrilog.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		AWSRegion:      os.Getenv("AWS_REGION"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		CloudFrontURL:  os.Getenv("CLOUDFRONT_URL"),
		SESEmail:       os.Getenv("SES_EMAIL"),
		SNSFCMArn:      os.Getenv("SNS_FCM_ARN"),
		UseRekognition: os.Getenv("REKOGNITION_LABELS") == "true",
		NutrientsFile:  os.Getenv("NUTRIENTS_FILE"),
		Location:       time.Local,
	}
	if s.S3Region == "" {
		s.S3Region = s.AWSRegion // fallback
	}
	if tz := os.Getenv("APP_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_TZ %q: %w", tz, err)
		}
		s.Location = loc
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return s, nil
}

// InitDB opens the configured engine and migrates the schema.
func InitDB(s *Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBEngine {
	case "", EnginePostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			s.DBHost,
			s.DBUser,
			s.DBPassword,
			s.DBName,
			s.DBPort,
		)
		dialector = postgres.Open(dsn)
	case EngineSQLite:
		if err := os.MkdirAll(filepath.Dir(s.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(s.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_ENGINE %q", s.DBEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.IntakeRecord{},
		&models.UserDevice{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
