package settings

import "os"

var version = "dev"

// InDevelop report whether running in develop environment
func InDevelop() bool {
	switch os.Getenv("MUNINN_ENV") {
	case "dev", "develop", "development":
		return true
	}
	return false
}
