package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
		reason   string
	}{
		{
			name:     "strong password accepted",
			password: "StrongPass1!",
			wantOK:   true,
		},
		{
			name:     "empty rejected",
			password: "",
			wantOK:   false,
			reason:   "must not be empty",
		},
		{
			name:     "too short rejected",
			password: "Ab1!",
			wantOK:   false,
			reason:   "at least 8 characters",
		},
		{
			name:     "missing uppercase rejected",
			password: "weakpass1!",
			wantOK:   false,
			reason:   "uppercase",
		},
		{
			name:     "missing lowercase rejected",
			password: "WEAKPASS1!",
			wantOK:   false,
			reason:   "lowercase",
		},
		{
			name:     "missing digit rejected",
			password: "WeakPassword!",
			wantOK:   false,
			reason:   "digit",
		},
		{
			name:     "missing symbol rejected",
			password: "WeakPassword1",
			wantOK:   false,
			reason:   "symbol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ValidatePassword(tt.password)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Empty(t, reason)
			} else {
				assert.Contains(t, reason, tt.reason)
			}
		})
	}
}
