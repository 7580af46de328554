package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	path := writeConfig(t, `
grammar:
  name: assistant
  wakeup:
    - hey amy
    - amy wake up
stemmer: porter
entities:
  - name: color
    kind: string
    grammar: (red|green|blue)
intents:
  - name: time
    grammar: what time is it
    response: It is late.
  - name: alarm
    grammar: set [an] alarm at {amytime}
logging:
  level: debug
`)

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Grammar.Name, "assistant")
	is.Equal(cfg.Grammar.Wakeup, []string{"hey amy", "amy wake up"})
	is.Equal(cfg.Grammar.Sleep, []string{"amy sleep"}) // default
	is.Equal(cfg.Language, "en")
	is.Equal(cfg.Stemmer, "porter")
	is.Equal(len(cfg.Entities), 1)
	is.Equal(cfg.Entities[0], EntityConfig{Name: "color", Kind: "string", Grammar: "(red|green|blue)"})
	is.Equal(len(cfg.Intents), 2)
	is.Equal(cfg.Intents[0].Name, "time") // order of the file
	is.Equal(cfg.Intents[0].Response, "It is late.")
	is.Equal(cfg.Intents[1].Grammar, "set [an] alarm at {amytime}")
	is.Equal(cfg.Logging.Level, "debug")
	is.Equal(cfg.Logging.Format, "text")
}

func TestLoad_Env(t *testing.T) {
	is := is.New(t)
	t.Setenv("AMY_STEMMER", "porter")
	t.Setenv("AMY_LOGGING_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "language: en\n"))
	is.NoErr(err)
	is.Equal(cfg.Stemmer, "porter")
	is.Equal(cfg.Logging.Level, "warn")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		caption string
		content string
	}{
		{
			caption: "an intent needs a grammar",
			content: "intents:\n  - name: time\n",
		},
		{
			caption: "an entity needs a name",
			content: "entities:\n  - grammar: (a|b)\n",
		},
		{
			caption: "a malformed file is an error",
			content: "intents: [\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("an error must occur")
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	is := is.New(t)
	var b bytes.Buffer
	logger := SetupLogging(LoggingConfig{Level: "warn", Format: "json"}, &b)
	logger.Info("hidden")
	logger.Warn("shown", "utterance", "hello")
	is.True(!strings.Contains(b.String(), "hidden"))
	is.True(strings.Contains(b.String(), `"msg":"shown"`))
	is.True(strings.Contains(b.String(), `"utterance":"hello"`))
}
