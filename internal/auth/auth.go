package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"farmacia/internal/api"
)

const (
	ErrInvalidCredentials Error = "invalid username or password"
	ErrNotLoggedIn        Error = "not logged in"
)

type Error string

func (e Error) Error() string { return string(e) }

// Prober validates a Basic token against a protected resource
type Prober interface {
	Probe(ctx context.Context, token string) error
}

// Manager runs the login and logout flows. It is the only writer of the
// session and of the stored credential.
type Manager struct {
	logger  *zap.Logger
	prober  Prober
	session *Session
	store   *Store
}

func NewManager(logger *zap.Logger, prober Prober, session *Session, store *Store) (*Manager, error) {
	m := Manager{
		logger:  logger,
		prober:  prober,
		session: session,
		store:   store,
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manager) validate() error {
	var missingDeps []string

	for _, tc := range []struct {
		dep string
		chk func() bool
	}{
		{
			dep: "logger",
			chk: func() bool { return m.logger != nil },
		},
		{
			dep: "prober",
			chk: func() bool { return m.prober != nil },
		},
		{
			dep: "session",
			chk: func() bool { return m.session != nil },
		},
		{
			dep: "store",
			chk: func() bool { return m.store != nil },
		},
	} {
		if !tc.chk() {
			missingDeps = append(missingDeps, tc.dep)
		}
	}

	if len(missingDeps) > 0 {
		return fmt.Errorf(
			"unable to initialize auth manager due to (%d) missing dependencies: %s",
			len(missingDeps),
			strings.Join(missingDeps, ","),
		)
	}

	return nil
}

// Login probes the API with the given credentials. On success the token is
// cached and stored; on any failure whatever was cached before is dropped.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	logger := m.logger.With(zap.String("username", username))
	token := EncodeBasic(username, password)

	if err := m.prober.Probe(ctx, token); err != nil {
		if dropErr := m.drop(); dropErr != nil {
			logger.Error("unable to drop credential", zap.Error(dropErr))
		}

		var apiErr *api.APIError
		if errors.Is(err, api.ErrUnauthorized) || errors.As(err, &apiErr) {
			logger.Warn("login rejected", zap.Error(err))
			return ErrInvalidCredentials
		}

		const msg = "unable to validate credentials"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	if err := m.store.Save(token); err != nil {
		const msg = "unable to cache credential"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}
	m.session.set(token)

	logger.Debug("successfully logged in")

	return nil
}

func (m *Manager) Logout() error {
	if err := m.drop(); err != nil {
		const msg = "unable to log out"
		m.logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	m.logger.Debug("successfully logged out")

	return nil
}

// HandleError drops the credential when err is an authorization failure and
// reports whether it did so
func (m *Manager) HandleError(err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}

	if dropErr := m.drop(); dropErr != nil {
		m.logger.Error("unable to drop credential", zap.Error(dropErr))
	}

	return true
}

// Require fails with ErrNotLoggedIn when no credential is cached
func (m *Manager) Require() error {
	if !m.session.Authenticated() {
		return ErrNotLoggedIn
	}

	return nil
}

func (m *Manager) drop() error {
	m.session.clear()
	return m.store.Delete()
}
