package jsgf

import (
	"strings"
	"testing"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/intent"
)

func TestRender(t *testing.T) {
	reg := agf.NewEntityRegistry()
	_, err := reg.Register("color", agf.EntityString, "(red|blue)")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		src     string
		rule    string
	}{
		{
			caption: "a sequence is rendered as space-separated words",
			src:     `Turn   ON the light`,
			rule:    `turn on the light`,
		},
		{
			caption: "groups keep their structure",
			src:     `turn (on|off) [the|all] lights`,
			rule:    `turn ( on | off ) [ the | all ] lights`,
		},
		{
			caption: "numeric entities and ranges are rendered as the number rule",
			src:     `wake me at {amytime} in $(1,5,1) minutes`,
			rule:    `wake me at <number> in <number> minutes`,
		},
		{
			caption: "a string entity is rendered as its words",
			src:     `paint it {color}`,
			rule:    `paint it ( ( red | blue ) )`,
		},
		{
			caption: "words with special characters are quoted",
			src:     `say "hi" back\slash o'clock`,
			rule:    `say "\"hi\"" "back\\slash" o'clock`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := agf.Parse(tt.src, reg)
			if err != nil {
				t.Fatal(err)
			}
			rule := Render(ast)
			if rule != tt.rule {
				t.Fatalf("unexpected rule; want: %v, got: %v", tt.rule, rule)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	reg := agf.NewEntityRegistry()
	newIntent := func(src string) *intent.Intent {
		ast, err := agf.Parse(src, reg)
		if err != nil {
			t.Fatal(err)
		}
		return intent.New("test", src, ast, nil)
	}
	intents := []*intent.Intent{
		newIntent("what time is it"),
		newIntent("set [an] alarm at {amytime}"),
	}
	g := &Grammar{
		Name:        "amy",
		Wakeup:      []string{"Amy wake up", "hello amy"},
		Sleep:       []string{"go to sleep"},
		Shutdown:    []string{"amy shutdown"},
		NumberWords: []string{"zero", "one", "two"},
	}

	expected := `#JSGF V1.0;

grammar amy;

public <wakeup> = ( amy wake up | hello amy );
public <sleep> = ( go to sleep );
public <shutdown> = ( amy shutdown );

<number> = ( zero | one | two )+;

public <` + intents[0].ID + `> = what time is it;
public <` + intents[1].ID + `> = set [ an ] alarm at <number>;
`
	got := Compile(g, intents)
	if got != expected {
		t.Fatalf("unexpected grammar; want:\n%v\ngot:\n%v", expected, got)
	}

	for i := 0; i < 10; i++ {
		if again := Compile(g, intents); again != got {
			t.Fatalf("compiling the same input must yield the same text; want:\n%v\ngot:\n%v", got, again)
		}
	}
}

func TestCompile_DefaultNumberWords(t *testing.T) {
	got := Compile(&Grammar{Name: "amy"}, nil)
	if !strings.Contains(got, "<number> = ( zero | one | two | three |") {
		t.Fatalf("the number rule must enumerate the English number words:\n%v", got)
	}
	if !strings.Contains(got, "| billion | and )+;") {
		t.Fatalf("the number rule must end with the magnitudes and the connector:\n%v", got)
	}
	if !strings.Contains(got, "public <wakeup> = ( <VOID> );") {
		t.Fatalf("a rule without phrases must be void:\n%v", got)
	}
}

func TestRender_LiteralRoundTrip(t *testing.T) {
	reg := agf.NewEntityRegistry()
	srcs := []string{
		"what time is it",
		"  turn\ton   the light  ",
		"Good Morning Amy",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			ast, err := agf.Parse(src, reg)
			if err != nil {
				t.Fatal(err)
			}
			rule := strings.Fields(Render(ast))
			words := strings.Fields(strings.ToLower(src))
			if strings.Join(rule, " ") != strings.Join(words, " ") {
				t.Fatalf("the literal words must survive compilation in order; want: %v, got: %v", words, rule)
			}
		})
	}
}
