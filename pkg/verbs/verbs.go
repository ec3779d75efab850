package verbs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/plainspeak/plainspeak/pkg/lexicon"
)

// Config carries the host-side collaborators the builtin verbs depend on.
// Zero-value fields fall back to stdout and a default HTTP client.
type Config struct {
	// Out receives SHOW output.
	Out io.Writer

	// Client performs DOWNLOAD requests.
	Client *http.Client
}

func (c *Config) out() io.Writer {
	if c == nil || c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Config) client() *http.Client {
	if c == nil || c.Client == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return c.Client
}

// Builtins returns the stock usage catalog entries, in their intended
// registration order. Order matters: the first candidate that binds and
// accepts a sentence wins.
func Builtins(cfg *Config) []lexicon.Usage {
	return []lexicon.Usage{
		getJSONFromFile(),
		getTextFromFile(),
		saveTextToFile(),
		downloadToFile(cfg),
		downloadText(cfg),
		showValue(cfg),
		compressToFile(),
	}
}

// asString is the resolver for roles that require textual input.
func asString(arg lexicon.Argument) (any, error) {
	return stringOf(arg)
}

// stringOf extracts the bound value as a string, falling back to the raw
// span text.
func stringOf(arg lexicon.Argument) (string, error) {
	switch v := arg.Value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		if arg.Text != "" {
			return arg.Text, nil
		}
		return "", fmt.Errorf("%s is empty", arg.Role)
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
