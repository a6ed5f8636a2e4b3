package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lapor/internal/auth"
	errs "lapor/internal/errors"
	"lapor/internal/model"
)

func TestUserService_Create(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewUserService(eng, auth.NewGate(eng))

	admin, _ := eng.UserByID("a1")
	created, err := svc.Create(context.Background(), &admin, NewUser{
		PJLPNumber: "50422240",
		Name:       "Budi Santoso",
		Role:       model.RolePetugas,
		Password:   "rahasia123",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("rahasia123")))
}

func TestUserService_CreateInvalidRole(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewUserService(eng, auth.NewGate(eng))

	admin, _ := eng.UserByID("a1")
	_, err := svc.Create(context.Background(), &admin, NewUser{
		PJLPNumber: "50422240",
		Name:       "Budi Santoso",
		Role:       "SUPERVISOR",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidRole)
}

func TestUserService_UpdateAuthorization(t *testing.T) {
	name := "Nama Baru"
	active := false
	admin := model.RoleAdmin

	tests := []struct {
		testName string
		actorID  string
		targetID string
		patch    model.UserPatch
		wantErr  error
	}{
		{testName: "officer edits own profile", actorID: "u1", targetID: "u1", patch: model.UserPatch{Name: &name}},
		{testName: "officer edits other profile", actorID: "u1", targetID: "u2", patch: model.UserPatch{Name: &name}, wantErr: errs.ErrForbidden},
		{testName: "officer changes own role", actorID: "u1", targetID: "u1", patch: model.UserPatch{Role: &admin}, wantErr: errs.ErrForbidden},
		{testName: "officer changes own active flag", actorID: "u1", targetID: "u1", patch: model.UserPatch{IsActive: &active}, wantErr: errs.ErrForbidden},
		{testName: "admin edits any profile", actorID: "a1", targetID: "u2", patch: model.UserPatch{Name: &name}},
		{testName: "admin changes a role", actorID: "a1", targetID: "u2", patch: model.UserPatch{Role: &admin}},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			eng := newServiceEngine(t)
			svc := NewUserService(eng, auth.NewGate(eng))

			actor, ok := eng.UserByID(tt.actorID)
			require.True(t, ok)
			before, _ := eng.UserByID(tt.targetID)

			_, err := svc.Update(context.Background(), &actor, tt.targetID, tt.patch, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				after, _ := eng.UserByID(tt.targetID)
				assert.Equal(t, before, after, "refused edits leave the profile untouched")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserService_UpdateSelfRefreshesSession(t *testing.T) {
	eng := newServiceEngine(t)
	gate := auth.NewGate(eng)
	svc := NewUserService(eng, gate)

	actor, err := gate.Login("50422231", model.RolePetugas, "")
	require.NoError(t, err)

	name := "Annas Rizky Pratama"
	_, err = svc.Update(context.Background(), actor, actor.ID, model.UserPatch{Name: &name}, "")
	require.NoError(t, err)

	session := gate.Session()
	require.NotNil(t, session.User)
	assert.Equal(t, name, session.User.Name)
}

func TestUserService_UpdateHashesNewPassword(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewUserService(eng, auth.NewGate(eng))

	admin, _ := eng.UserByID("a1")
	updated, err := svc.Update(context.Background(), &admin, "u1", model.UserPatch{}, "sandi-baru")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("sandi-baru")))
}

func TestUserService_DeleteSelfRefused(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewUserService(eng, auth.NewGate(eng))

	admin, _ := eng.UserByID("a1")
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), &admin, admin.ID), errs.ErrSelfDelete)
	assert.ErrorIs(t, svc.HardDelete(context.Background(), &admin, admin.ID), errs.ErrSelfDelete)

	_, ok := eng.UserByID(admin.ID)
	assert.True(t, ok)
}

func TestUserService_Get(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewUserService(eng, auth.NewGate(eng))

	user, err := svc.Get(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "Annaufal Arifa", user.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
