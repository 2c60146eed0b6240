package brandeck

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/brandeck/config"
	"github.com/k1LoW/brandeck/version"
	"github.com/k1LoW/errors"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
)

var userAgent = "brandeck/" + version.Version + " (+https://github.com/k1LoW/brandeck)"

// CredentialsPath returns the OAuth client credentials file for profile.
// A profile without its own credentials-{profile}.json uses credentials.json.
func CredentialsPath(profile string) string {
	creds := filepath.Join(config.DataHomePath(), "credentials.json")
	if profile != "" {
		p := filepath.Join(config.DataHomePath(), fmt.Sprintf("credentials-%s.json", profile))
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			creds = p
		}
	}
	return creds
}

// TokenPath returns the cached OAuth token file.
func TokenPath() string {
	return filepath.Join(config.StateHomePath(), "token.json")
}

func (u *Uploader) getHTTPClient(ctx context.Context, cfg *oauth2.Config) (_ *http.Client, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	tokenPath := TokenPath()
	token, err := tokenFromFile(tokenPath)
	if err != nil {
		token, err = u.getTokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, err
		}
	} else if token.Expiry.Before(time.Now()) {
		u.logger.Info("token has expired, refreshing")
		var newToken *oauth2.Token
		if token.RefreshToken == "" {
			u.logger.Info("no refresh token available, getting new token from web")
			newToken, err = u.getTokenFromWeb(ctx, cfg)
		} else if newToken, err = cfg.TokenSource(ctx, token).Token(); err != nil {
			u.logger.Info("failed to refresh token, getting new token from web", slog.String("error", err.Error()))
			newToken, err = u.getTokenFromWeb(ctx, cfg)
		} else {
			u.logger.Info("token refreshed successfully")
		}
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, newToken); err != nil {
			return nil, err
		}
		token = newToken
	}
	client := cfg.Client(ctx, token)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = client
	retryClient.RetryMax = 10
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.Logger = newAPILogger(u.logger)

	return retryClient.StandardClient(), nil
}

// getTokenFromWeb runs the authorization code flow with PKCE against a
// loopback redirect server.
func (u *Uploader) getTokenFromWeb(ctx context.Context, cfg *oauth2.Config) (_ *oauth2.Token, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	codeVerifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}
	codeChallenge := generateCodeChallenge(codeVerifier)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(stateBytes)

	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	codeCh := make(chan string, 1)
	handler := http.NewServeMux()
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			return
		}
		_, _ = w.Write([]byte("Received code. You may now close this tab."))
		select {
		case codeCh <- code:
		default:
		}
	})
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("serve: %w", err)
		}
	}()
	defer func() {
		_ = srv.Shutdown(context.WithoutCancel(ctx))
	}()

	cfg.RedirectURL = "http://" + ln.Addr().String() + "/"
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"))
	u.logger.Info("opening browser for authorization", slog.String("url", authURL))
	if err := browser.OpenURL(authURL); err != nil {
		return nil, err
	}

	var authCode string
	select {
	case authCode = <-codeCh:
	case err := <-serveErr:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return cfg.Exchange(ctx, authCode, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
}

func tokenFromFile(file string) (_ *oauth2.Token, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	return nil
}

// generateCodeVerifier returns a random RFC 7636 code verifier.
func generateCodeVerifier() (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func generateCodeChallenge(verifier string) string {
	h := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

var _ retryablehttp.LeveledLogger = (*apiLogger)(nil)

type apiLogger struct {
	l *slog.Logger
}

func (l *apiLogger) Error(msg string, keysAndValues ...any) {
	l.l.Error(msg, append([]any{slog.String("original_log_level", "error")}, keysAndValues...)...)
}
func (l *apiLogger) Info(msg string, keysAndValues ...any) {
	l.l.Info(msg, append([]any{slog.String("original_log_level", "info")}, keysAndValues...)...)
}
func (l *apiLogger) Debug(msg string, keysAndValues ...any) {
	if strings.HasPrefix(msg, "retrying") {
		// Raised to info so the dot handler shows its spinner.
		l.l.Info(msg, append([]any{slog.String("original_log_level", "debug")}, keysAndValues...)...)
		return
	}
	l.l.Debug(msg, append([]any{slog.String("original_log_level", "debug")}, keysAndValues...)...)
}
func (l *apiLogger) Warn(msg string, keysAndValues ...any) {
	l.l.Warn(msg, append([]any{slog.String("original_log_level", "warn")}, keysAndValues...)...)
}

func newAPILogger(l *slog.Logger) retryablehttp.LeveledLogger {
	return &apiLogger{
		l: l.WithGroup("api"),
	}
}
