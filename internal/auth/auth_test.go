package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farmacia/internal/api"
	"farmacia/internal/localdb"
)

type fakeProber struct {
	err    error
	tokens []string
}

func (f *fakeProber) Probe(_ context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}

func newManager(t *testing.T, prober Prober, cached string) (*Manager, *Store) {
	t.Helper()

	db, err := localdb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	require.NoError(t, err)
	if cached != "" {
		require.NoError(t, store.Save(cached))
	}

	m, err := NewManager(zap.NewNop(), prober, NewSession(cached), store)
	require.NoError(t, err)

	return m, store
}

func Test_EncodeBasic(t *testing.T) {
	assert.Equal(t, "YWRtaW46c2VjcmV0", EncodeBasic("admin", "secret"))
}

func Test_Manager_Login(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		probeErr error
		chk      func(t *testing.T, m *Manager, store *Store, err error)
	}{
		{
			desc: "Happy path",
			chk: func(t *testing.T, m *Manager, store *Store, err error) {
				require.NoError(t, err)
				assert.Equal(t, "YWRtaW46c2VjcmV0", m.session.Token())

				token, err := store.Load()
				require.NoError(t, err)
				assert.Equal(t, "YWRtaW46c2VjcmV0", token)
			},
		},
		{
			desc:     "Rejected credentials drop the old token",
			probeErr: api.ErrUnauthorized,
			chk: func(t *testing.T, m *Manager, store *Store, err error) {
				assert.True(t, errors.Is(err, ErrInvalidCredentials))
				assert.False(t, m.session.Authenticated())

				token, err := store.Load()
				require.NoError(t, err)
				assert.Empty(t, token)
			},
		},
		{
			desc:     "Any non-2xx is a rejection",
			probeErr: &api.APIError{StatusCode: http.StatusForbidden, Message: "forbidden"},
			chk: func(t *testing.T, m *Manager, store *Store, err error) {
				assert.True(t, errors.Is(err, ErrInvalidCredentials))
			},
		},
		{
			desc:     "Transport failure is propagated",
			probeErr: fmt.Errorf("unable to reach api: %w", errors.New("connection refused")),
			chk: func(t *testing.T, m *Manager, store *Store, err error) {
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrInvalidCredentials))
				assert.Contains(t, err.Error(), "connection refused")
				assert.False(t, m.session.Authenticated())
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			prober := &fakeProber{err: tc.probeErr}
			m, store := newManager(t, prober, "b2xkOnRva2Vu")

			err := m.Login(context.Background(), "admin", "secret")
			assert.Equal(t, []string{"YWRtaW46c2VjcmV0"}, prober.tokens)
			tc.chk(t, m, store, err)
		})
	}
}

func Test_Manager_Logout(t *testing.T) {
	m, store := newManager(t, &fakeProber{}, "b2xkOnRva2Vu")
	require.NoError(t, m.Require())

	require.NoError(t, m.Logout())
	assert.True(t, errors.Is(m.Require(), ErrNotLoggedIn))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func Test_Manager_HandleError(t *testing.T) {
	m, _ := newManager(t, &fakeProber{}, "b2xkOnRva2Vu")

	assert.False(t, m.HandleError(errors.New("boom")))
	assert.True(t, m.session.Authenticated())

	assert.True(t, m.HandleError(fmt.Errorf("unable to list: %w", api.ErrUnauthorized)))
	assert.False(t, m.session.Authenticated())
}

func Test_Session_ConcurrentReads(t *testing.T) {
	s := NewSession("dG9rZW4=")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "dG9rZW4=", s.Token())
		}()
	}
	wg.Wait()
}

func Test_NewManager_MissingDeps(t *testing.T) {
	_, err := NewManager(nil, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(4) missing dependencies")
}
