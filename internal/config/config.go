package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth" validate:"required"`
	Translation TranslationConfig `mapstructure:"translation" validate:"required"`
	Dictionary  DictionaryConfig  `mapstructure:"dictionary" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                    validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"        validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                   validate:"omitempty,gte=4,lte=31"`
}

// TranslationConfig selects and configures the translation backend.
//
// Provider is either "libretranslate" or "gemini". The backend-specific
// fields are validated when that backend is selected.
type TranslationConfig struct {
	Provider            string `mapstructure:"provider" validate:"required,oneof=libretranslate gemini"`
	LibreTranslateURL   string `mapstructure:"libretranslate_url" validate:"required_if=Provider libretranslate,omitempty,url"`
	LibreTranslateKey   string `mapstructure:"libretranslate_key"`
	GeminiAPIKey        string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModelName     string `mapstructure:"gemini_model_name" validate:"required_if=Provider gemini"`
}

// DictionaryConfig configures the lexical lookup backend.
type DictionaryConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}
