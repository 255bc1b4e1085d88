package cli

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// recorded is the last request seen by the stub API.
type recorded struct {
	calls  int
	method string
	host   string
	path   string
	body   string
	header http.Header
}

func validConfig() Config {
	return Config{
		APIKey:   "ck_test_123",
		BaseURL:  "http://api.test",
		Timeout:  5 * time.Second,
		LogLevel: "warn",
	}
}

// stubAPI answers every call with status and body and records the request.
func stubAPI(t *testing.T, rec *recorded, status int, body string) roundTripFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		rec.calls++
		rec.method = req.Method
		rec.host = req.URL.Host
		rec.path = req.URL.Path
		rec.header = req.Header.Clone()
		if req.Body != nil {
			data, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			rec.body = string(data)
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

// testEnv returns an Env that loads cfg, reads files from files and talks to rt.
func testEnv(stdout io.Writer, cfg Config, files map[string]string, rt http.RoundTripper) *Env {
	env := NewEnv(
		WithStdout(stdout),
		WithStderr(io.Discard),
		WithConfigLoader(func() (Config, error) { return cfg, nil }),
		WithReadFile(func(name string) ([]byte, error) {
			content, ok := files[name]
			if !ok {
				return nil, &fileNotFoundError{name: name}
			}
			return []byte(content), nil
		}),
		WithClientOptions(crawlkit.WithTransport(rt)),
	)
	env.NewLogger = func(Config) (*zap.Logger, error) { return zap.NewNop(), nil }
	return env
}

type fileNotFoundError struct{ name string }

func (e *fileNotFoundError) Error() string { return "open " + e.name + ": no such file or directory" }

// run executes the root command with args and returns stdout.
func run(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()
	out, ok := env.Stdout.(*bytes.Buffer)
	require.True(t, ok, "test env stdout must be a *bytes.Buffer")

	cmd := NewRootCmd(env, "1.2.3")
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}
