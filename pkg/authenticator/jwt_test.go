package authenticator_test

import (
	"testing"
	"time"

	"github.com/battlezone-labs/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", time.Minute)
	token, err := engine.Generate("user-id", payload{Name: "abc"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "abc", obj.Name)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", -time.Minute)
	token, err := engine.Generate("user-id", payload{Name: "abc"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", time.Minute)
	token, err := engine.Generate("user-id", payload{Name: "abc"})
	require.NoError(t, err)

	other := authenticator.NewTokenEngine[payload]("another-secret", time.Minute)
	_, err = other.Verify(token)
	require.Error(t, err)
}
