package config

import (
	"fmt"
	"os"
	"strconv"

	"dicingserver/analysis"
)

// Config конфигурация сервера каталога дисков
type Config struct {
	// Сервер
	Port     string `json:"port"`
	LogLevel string `json:"log_level"`

	// База каталогов
	DatabasePath string `json:"database_path"`

	// Грамматика артикулов: путь к CSV условных обозначений.
	// Пустой — используется встроенная грамматика.
	GrammarPath string `json:"grammar_path"`

	// Аналитика
	AssumedCutsPerHour float64          `json:"assumed_cuts_per_hour"`
	ScoreWeights       analysis.Weights `json:"score_weights"`

	// Рекомендации
	RecommendationTopK   int     `json:"recommendation_top_k"`
	KerfToleranceMicrons float64 `json:"kerf_tolerance_microns"`

	// Ограничение частоты загрузок каталога
	UploadRatePerMinute int `json:"upload_rate_per_minute"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	defaults := analysis.DefaultWeights()

	cfg := &Config{
		Port:     getEnv("SERVER_PORT", "9990"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DatabasePath: getEnv("DATABASE_PATH", "catalog.db"),
		GrammarPath:  os.Getenv("GRAMMAR_PATH"),

		AssumedCutsPerHour: getEnvFloat("ASSUMED_CUTS_PER_HOUR", 120),
		ScoreWeights: analysis.Weights{
			CutRate:         getEnvFloat("SCORE_WEIGHT_CUT_RATE", defaults.CutRate),
			Lifespan:        getEnvFloat("SCORE_WEIGHT_LIFESPAN", defaults.Lifespan),
			ChippingPenalty: getEnvFloat("SCORE_WEIGHT_CHIPPING_PENALTY", defaults.ChippingPenalty),
		},

		RecommendationTopK:   getEnvInt("RECOMMENDATION_TOP_K", 10),
		KerfToleranceMicrons: getEnvFloat("KERF_TOLERANCE_MICRONS", 0),

		UploadRatePerMinute: getEnvInt("UPLOAD_RATE_PER_MIN", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port не задан")
	}
	if c.AssumedCutsPerHour <= 0 {
		return fmt.Errorf("assumed_cuts_per_hour должен быть больше нуля, получено %g", c.AssumedCutsPerHour)
	}
	if c.RecommendationTopK <= 0 {
		return fmt.Errorf("recommendation_top_k должен быть больше нуля, получено %d", c.RecommendationTopK)
	}
	if c.KerfToleranceMicrons < 0 {
		return fmt.Errorf("kerf_tolerance_microns не может быть отрицательным, получено %g", c.KerfToleranceMicrons)
	}
	w := c.ScoreWeights
	if w.CutRate < 0 || w.Lifespan < 0 || w.ChippingPenalty < 0 {
		return fmt.Errorf("веса оценки не могут быть отрицательными: %+v", w)
	}
	if w.CutRate == 0 && w.Lifespan == 0 {
		return fmt.Errorf("хотя бы один из весов cut_rate и lifespan должен быть положительным")
	}
	if c.UploadRatePerMinute <= 0 {
		return fmt.Errorf("upload_rate_per_min должен быть больше нуля, получено %d", c.UploadRatePerMinute)
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
