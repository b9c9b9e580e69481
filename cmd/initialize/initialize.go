package initialize

import (
	"os"
	"strconv"
	"time"

	"github.com/denismitr/goenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/armanrma7/rmbg/removebg"
)

// DotEnv loads a .env file when one is present; a plain environment is fine.
func DotEnv() {
	_ = godotenv.Load()
}

func Logger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	}

	return log
}

func ClientFromEnv() *removebg.Client {
	return removebg.NewClient(removebg.Config{
		BaseURL: goenv.MustString("REMOVEBG_BASE_URL"),
	})
}

func IntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
