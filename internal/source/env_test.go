package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDotEnv_Missing(t *testing.T) {
	vals, err := LoadDotEnv(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 0 {
		t.Fatalf("vals = %v, want empty", vals)
	}
}

func TestLoadDotEnv_Reads(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nAPI_KEY=abc123\nexport MODEL=\"large\"\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	vals, err := LoadDotEnv(dir)
	if err != nil {
		t.Fatal(err)
	}
	if vals["API_KEY"] != "abc123" {
		t.Fatalf("API_KEY = %q", vals["API_KEY"])
	}
	if vals["MODEL"] != "large" {
		t.Fatalf("MODEL = %q", vals["MODEL"])
	}
}

func TestLoadDotEnv_DoesNotTouchProcessEnv(t *testing.T) {
	dir := t.TempDir()
	os.Unsetenv("MDFILES_DOTENV_PROBE")
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("MDFILES_DOTENV_PROBE=1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDotEnv(dir); err != nil {
		t.Fatal(err)
	}
	if v, ok := os.LookupEnv("MDFILES_DOTENV_PROBE"); ok {
		t.Fatalf("process env was modified: %q", v)
	}
}

func hasEnv(env []string, kv string) bool {
	for _, e := range env {
		if e == kv {
			return true
		}
	}
	return false
}

func TestBuildEnv(t *testing.T) {
	os.Setenv("CLAUDECODE", "1")
	defer os.Unsetenv("CLAUDECODE")

	env := BuildEnv(map[string]string{"API_KEY": "abc"}, map[string]string{"PROMPT_FILE": "/tmp/p.md"})
	if !hasEnv(env, "API_KEY=abc") {
		t.Fatal("missing dotenv value")
	}
	if !hasEnv(env, "MDFILES_PROMPT_FILE=/tmp/p.md") {
		t.Fatal("missing MDFILES_PROMPT_FILE")
	}
	for _, e := range env {
		if strings.HasPrefix(e, "CLAUDECODE") {
			t.Fatalf("CLAUDECODE not stripped: %q", e)
		}
	}
}
