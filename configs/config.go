package configs

import (
	"github.com/booknest/booknest-server/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port            string `mapstructure:"PORT" validate:"required"`
	MongoURI        string `mapstructure:"MONGO_URI" validate:"required"`
	MongoDatabase   string `mapstructure:"MONGO_DB" validate:"required"`
	MongoMaxPool    uint64 `mapstructure:"MONGO_MAX_POOL" validate:"min=1"`
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY" validate:"required"`
	ClientOrigin    string `mapstructure:"CLIENT_ORIGIN" validate:"required"`
	Currency        string `mapstructure:"CURRENCY" validate:"required,len=3"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("MONGO_DB", "book_nest_db")
	viper.SetDefault("MONGO_MAX_POOL", "100")
	viper.SetDefault("CLIENT_ORIGIN", "*")
	viper.SetDefault("CURRENCY", "usd")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
