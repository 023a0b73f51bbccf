package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFileKeyring(t *testing.T) {
	t.Helper()

	saved := ringConfig
	ringConfig = keyring.Config{
		ServiceName:      serviceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("test"),
	}
	t.Cleanup(func() { ringConfig = saved })
}

func TestSetGetDelete(t *testing.T) {
	useFileKeyring(t)

	require.NoError(t, Set("token", "s3cret"))

	got, err := Get("token")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, Delete("token"))

	_, err = Get("token")
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}

func TestRedisPassword(t *testing.T) {
	useFileKeyring(t)

	pw, err := RedisPassword()
	require.NoError(t, err)
	assert.Empty(t, pw)

	require.NoError(t, Set(RedisPasswordKey, "from-keyring"))
	pw, err = RedisPassword()
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", pw)

	t.Setenv(RedisPasswordEnv, "from-env")
	pw, err = RedisPassword()
	require.NoError(t, err)
	assert.Equal(t, "from-env", pw)
}
