package logger

import "os"

func noError(err error) bool {
	return err == nil
}

func isTestMode() bool {
	return os.Getenv(envTestMode) == "true"
}
