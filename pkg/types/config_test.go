package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/backstage"},
			wantErr: nil,
		},
		{
			name:    "empty backend",
			config:  Config{DataDir: "/tmp/backstage"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres", DataDir: "/tmp/backstage"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty data dir",
			config:  Config{Backend: BackendSQLite},
			wantErr: ErrDataDirEmpty,
		},
		{
			name:    "negative pool size",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp", MaxConns: -1},
			wantErr: ErrPoolInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_PoolDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMaxConns, c.GetMaxConns())
	assert.Equal(t, DefaultMinIdleConns, c.GetMinIdleConns())
	assert.Equal(t, DefaultAcquireTimeout, c.GetAcquireTimeout())

	c = Config{MaxConns: 4, MinIdleConns: 10, AcquireTimeout: time.Second}
	assert.Equal(t, 4, c.GetMaxConns())
	assert.Equal(t, 4, c.GetMinIdleConns(), "warm floor is capped at the pool bound")
	assert.Equal(t, time.Second, c.GetAcquireTimeout())
}

func TestConfig_Log(t *testing.T) {
	var c Config
	assert.NotNil(t, c.Log(), "unset logger yields a usable discard logger")
}
