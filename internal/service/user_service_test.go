package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"locacar/internal/apperrors"
	"locacar/internal/auth"
	"locacar/internal/entities"
)

func adminActor() auth.Actor {
	return auth.Actor{ID: "admin-1", Username: "root", Role: auth.RoleAdmin}
}

func TestCreateManager(t *testing.T) {
	t.Run("hashes the password and defaults to active", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users, NewAuditService(&fakeAuditStore{}, testLogger()))

		manager, err := svc.CreateManager(adminActor(), entities.CreateManagerRequest{
			Username: "fatima", FullName: "Fatima Zahra", Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleManager, manager.Role)
		assert.True(t, manager.IsActive)
		assert.NotEqual(t, "s3cret-pass", manager.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewUserService(newFakeUserStore(), NewAuditService(&fakeAuditStore{}, testLogger()))
		_, err := svc.CreateManager(adminActor(), entities.CreateManagerRequest{
			Username: "fatima", FullName: "Fatima Zahra", Password: "short",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})
}

func TestUpdateManager(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, NewAuditService(&fakeAuditStore{}, testLogger()))
	manager, err := svc.CreateManager(adminActor(), entities.CreateManagerRequest{
		Username: "fatima", FullName: "Fatima Zahra", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	t.Run("deactivation flag", func(t *testing.T) {
		inactive := false
		updated, err := svc.UpdateManager(adminActor(), manager.ID, entities.ManagerUpdate{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("password change is re-hashed", func(t *testing.T) {
		newPass := "another-pass"
		updated, err := svc.UpdateManager(adminActor(), manager.ID, entities.ManagerUpdate{Password: &newPass})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPass)))
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := svc.UpdateManager(adminActor(), manager.ID, entities.ManagerUpdate{})
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})
}

func TestDeleteManager(t *testing.T) {
	t.Run("cannot delete own account", func(t *testing.T) {
		svc := NewUserService(newFakeUserStore(), NewAuditService(&fakeAuditStore{}, testLogger()))
		err := svc.DeleteManager(adminActor(), "admin-1")
		require.Error(t, err)
		assert.Equal(t, apperrors.Authorization, apperrors.KindOf(err))
	})

	t.Run("deletes another manager", func(t *testing.T) {
		users := newFakeUserStore()
		svc := NewUserService(users, NewAuditService(&fakeAuditStore{}, testLogger()))
		manager, err := svc.CreateManager(adminActor(), entities.CreateManagerRequest{
			Username: "fatima", FullName: "Fatima Zahra", Password: "s3cret-pass",
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteManager(adminActor(), manager.ID))
		_, err = users.GetManagerByID(manager.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
