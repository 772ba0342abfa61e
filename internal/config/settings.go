package config

// Settings are the game options shared by every front end.
type Settings struct {
	HighScoreFile string
	DatabaseURL   string
	Audio         bool
	Volume        float64
	Ship          int
	LogLevel      string
	LogFile       string
}

// Load reads Settings from the environment.
func Load() *Settings {
	return &Settings{
		HighScoreFile: GetEnv("STELLAR_HIGHSCORE_FILE", "high_score.txt"),
		DatabaseURL:   GetEnv("DATABASE_URL", ""),
		Audio:         GetEnvBool("STELLAR_AUDIO", true),
		Volume:        GetEnvFloat("STELLAR_VOLUME", 0.7),
		Ship:          GetEnvInt("STELLAR_SHIP", 1),
		LogLevel:      GetEnv("STELLAR_LOG_LEVEL", "info"),
		LogFile:       GetEnv("STELLAR_LOG_FILE", ""),
	}
}
