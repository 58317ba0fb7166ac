package config

import "os"

func IsDebug() bool {
	return os.Getenv("GADGET_DEBUG") == "1"
}
