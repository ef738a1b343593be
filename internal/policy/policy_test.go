package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
)

func TestCanAccessProject(t *testing.T) {
	project := &models.Project{CreatorEmail: "Owner@Example.com"}

	tests := []struct {
		name string
		sess auth.Session
		want error
	}{
		{"owning client", auth.Session{Role: models.RoleClient, Email: "owner@example.com"}, nil},
		{"other client", auth.Session{Role: models.RoleClient, Email: "other@example.com"}, ErrForbidden},
		{"strategist", auth.Session{Role: models.RoleStrategist, Email: "team@example.com"}, nil},
		{"admin", auth.Session{Role: models.RoleAdmin, Email: "admin@example.com"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessProject(tt.sess, project)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOwnsNotification(t *testing.T) {
	n := &models.Notification{UserID: "user-a"}

	assert.NoError(t, OwnsNotification(auth.Session{UserID: "user-a"}, n))
	assert.ErrorIs(t, OwnsNotification(auth.Session{UserID: "user-b"}, n), ErrHidden)
}

func TestCanDeactivate(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin, IsActive: true}
	client := &models.User{Role: models.RoleClient, IsActive: true}

	assert.ErrorIs(t, CanDeactivate(admin, 1), ErrLastAdmin)
	assert.NoError(t, CanDeactivate(admin, 2))
	assert.NoError(t, CanDeactivate(client, 0))
}

func TestRequireRole(t *testing.T) {
	sess := auth.Session{Role: models.RoleDesigner}

	assert.NoError(t, RequireRole(sess, models.RoleAdmin, models.RoleDesigner))
	assert.ErrorIs(t, RequireRole(sess, models.RoleAdmin), ErrForbidden)
	assert.NoError(t, RequireTeam(sess))
	assert.ErrorIs(t, RequireTeam(auth.Session{Role: models.RoleClient}), ErrForbidden)
}
