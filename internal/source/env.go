package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read for the generator command.
const EnvFile = ".env"

// LoadDotEnv reads dir/.env. A missing file yields an empty map.
func LoadDotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vals, nil
}

// BuildEnv returns the generator's environment: the parent environment
// without CLAUDECODE* markers, then dotenv values, then each var exported as
// MDFILES_<NAME>.
func BuildEnv(dotenv, vars map[string]string) []string {
	var env []string
	for _, e := range os.Environ() {
		key := strings.SplitN(e, "=", 2)[0]
		if strings.HasPrefix(key, "CLAUDECODE") {
			continue
		}
		env = append(env, e)
	}
	for _, k := range sortedKeys(dotenv) {
		env = append(env, k+"="+dotenv[k])
	}
	for _, k := range sortedKeys(vars) {
		env = append(env, "MDFILES_"+k+"="+vars[k])
	}
	return env
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
