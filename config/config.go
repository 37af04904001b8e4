package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret string
	}
	Match struct {
		TTLSeconds int
	}
	Game struct {
		Ante             int
		StartingBankroll int
		MinBet           int
		Shistri          struct {
			Enabled bool
			Percent int
			MinChip int
		}
		DeckPolicy       string
		DeckLowThreshold int
		MaxPlayers       int
		Lang             string
	}
	Session struct {
		TurnSeconds int
		BotDelayMs  int
		StepDelayMs int
		MaxRounds   int
		MaxTurns    int
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
}
