package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	APIJWTSecret      string `mapstructure:"API_JWT_SECRET"`

	// Gemini.
	GeminiAPIKey string `mapstructure:"GEMINIAI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Twilio.
	TwilioAccountSID        string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken         string `mapstructure:"TWILIO_AUTH_TOKEN"`
	FromPhoneNumber         string `mapstructure:"FROM_PHONE_NUMBER"`
	PublicBaseURL           string `mapstructure:"PUBLIC_BASE_URL"`
	TwilioValidateSignature bool   `mapstructure:"TWILIO_VALIDATE_SIGNATURE"`
	VoiceName               string `mapstructure:"VOICE_NAME"`
	VoiceLanguage           string `mapstructure:"VOICE_LANGUAGE"`
	GatherTimeout           int    `mapstructure:"GATHER_TIMEOUT"`

	// Call sessions: "memory" or "redis".
	SessionStore string        `mapstructure:"SESSION_STORE"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Appointments: "file" or "mongo".
	AppointmentStore string `mapstructure:"APPOINTMENT_STORE"`
	AppointmentsFile string `mapstructure:"APPOINTMENTS_FILE"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseName     string `mapstructure:"DATABASE_NAME"`

	// SMS confirmations and reminders.
	NotificationsEnabled bool          `mapstructure:"NOTIFICATIONS_ENABLED"`
	ReminderLead         time.Duration `mapstructure:"REMINDER_LEAD"`
	ClinicTimezone       string        `mapstructure:"CLINIC_TIMEZONE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// setDefaults also registers every key so AutomaticEnv picks it up on Unmarshal.
func setDefaults() {
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 30)
	viper.SetDefault("API_JWT_SECRET", "")

	viper.SetDefault("GEMINIAI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")

	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("FROM_PHONE_NUMBER", "")
	viper.SetDefault("PUBLIC_BASE_URL", "")
	viper.SetDefault("TWILIO_VALIDATE_SIGNATURE", false)
	viper.SetDefault("VOICE_NAME", "Polly.Aditi")
	viper.SetDefault("VOICE_LANGUAGE", "en-IN")
	viper.SetDefault("GATHER_TIMEOUT", 5)

	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL", 30*time.Minute)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)

	viper.SetDefault("APPOINTMENT_STORE", "file")
	viper.SetDefault("APPOINTMENTS_FILE", "appointments.json")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinicvoice")

	viper.SetDefault("NOTIFICATIONS_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD", 2*time.Hour)
	viper.SetDefault("CLINIC_TIMEZONE", "Asia/Kolkata")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
