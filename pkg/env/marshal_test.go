package env

import (
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transport struct {
	Retries int           `env:"T_RETRIES"`
	Delay   time.Duration `env:"T_DELAY"`
}

type sample struct {
	Provider  string   `env:"S_PROVIDER,required"`
	APIKey    string   `env:"S_API_KEY"`
	Temp      float64  `env:"S_TEMPERATURE"`
	JSON      bool     `env:"S_JSON"`
	Note      string   `env:"S_NOTE"`
	Tags      []string `env:"S_TAGS"`
	Untagged  string
	hidden    string `env:"S_HIDDEN"`
	Transport transport
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Provider: "deepseek",
		Temp:     0.3,
		JSON:     true,
		Note:     "local model # fast",
		Tags:     []string{"a", "b"},
		Untagged: "ignored",
		hidden:   "ignored",
		Transport: transport{
			Retries: 3,
			Delay:   2 * time.Second,
		},
	}

	out, err := MarshalEnv(s)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"S_PROVIDER=deepseek",
		"S_TEMPERATURE=0.3",
		"S_JSON=true",
		`S_NOTE="local model # fast"`,
		"S_TAGS=a,b",
		"T_RETRIES=3",
		"T_DELAY=2s",
	}, "\n") + "\n"
	assert.Equal(t, expected, out)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "local model # fast", parsed["S_NOTE"])
	assert.Equal(t, "2s", parsed["T_DELAY"])
	assert.NotContains(t, parsed, "S_API_KEY")
}

func TestMarshalEnv_ByValueAndErrors(t *testing.T) {
	out, err := MarshalEnv(transport{Retries: 1})
	require.NoError(t, err)
	assert.Equal(t, "T_RETRIES=1\n", out)

	out, err = MarshalEnv(&transport{})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = MarshalEnv("nope")
	assert.Error(t, err)

	var nilPtr *transport
	_, err = MarshalEnv(nilPtr)
	assert.Error(t, err)
}
