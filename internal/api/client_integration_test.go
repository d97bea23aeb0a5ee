//go:build integration
// +build integration

package api

import (
	"context"
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// These tests run against a live backend. FARMACIA_API_URL, FARMACIA_USER
// and FARMACIA_PASSWORD must point at a development instance.
func Test_Client_Live(t *testing.T) {
	baseURL := os.Getenv("FARMACIA_API_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	token := base64.StdEncoding.EncodeToString(
		[]byte(os.Getenv("FARMACIA_USER") + ":" + os.Getenv("FARMACIA_PASSWORD")),
	)

	for _, tc := range []struct {
		desc  string
		token string
		chk   func(t *testing.T, c *Client)
	}{
		{
			desc:  "Happy path - probe",
			token: token,
			chk: func(t *testing.T, c *Client) {
				require.NoError(t, c.Probe(context.Background(), token))
			},
		},
		{
			desc:  "Happy path - list medications",
			token: token,
			chk: func(t *testing.T, c *Client) {
				meds, err := c.ListMedications(context.Background())
				require.NoError(t, err)

				for i := range meds {
					assert.NotZero(t, meds[i].ID)
					assert.NotEmpty(t, meds[i].Status)
				}
			},
		},
		{
			desc: "No credential is unauthorized",
			chk: func(t *testing.T, c *Client) {
				_, err := c.ListCategories(context.Background())
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			c, err := NewClient(zap.NewNop(), baseURL, staticCreds(tc.token), nil)
			require.NoError(t, err)

			tc.chk(t, c)
		})

		// sleep so we dont hammer the api
		time.Sleep(time.Millisecond * 200)
	}
}
