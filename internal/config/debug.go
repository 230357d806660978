package config

import "os"

func IsDebug() bool {
	return os.Getenv("ANNALS_DEBUG") == "1"
}
