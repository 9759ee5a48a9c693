package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv files loaded before flags are resolved.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads variables from the given dotenv files and returns the
// ones that existed. Variables already set in the process environment are
// not overwritten.
func LoadEnvFiles(paths ...string) ([]string, error) {
	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
