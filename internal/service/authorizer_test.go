package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	logger := logrus.New()
	auth := NewAuthorizer("42", logger)

	tests := []struct {
		name     string
		senderID string
		want     bool
	}{
		{
			name:     "configured sender is accepted",
			senderID: "42",
			want:     true,
		},
		{
			name:     "other sender is rejected",
			senderID: "43",
			want:     false,
		},
		{
			name:     "absent identity is rejected",
			senderID: "",
			want:     false,
		},
		{
			name:     "comparison is exact string equality",
			senderID: " 42",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Authorize(tt.senderID))
		})
	}
}
