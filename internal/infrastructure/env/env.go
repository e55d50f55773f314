package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env and then overlays .env.<APP_ENV>. Missing files are not an
// error; the returned list names the files that were applied.
func Load(dir string) (appEnv string, loaded []string) {
	appEnv = os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	base := joinDir(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		loaded = append(loaded, base)
	}

	overlay := joinDir(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(overlay); err == nil {
		loaded = append(loaded, overlay)
	}

	return appEnv, loaded
}

func joinDir(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + name
}
