package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/supportportal/internal/client/client"
	"github.com/dmitrijs2005/supportportal/internal/client/models"
	"github.com/dmitrijs2005/supportportal/internal/client/notify"
	"github.com/dmitrijs2005/supportportal/internal/common"
)

func loggedInStore(t *testing.T) Session {
	t.Helper()
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveToken(ctx, "tok"))
	require.NoError(t, s.SetCurrentUser(ctx, models.User{Username: "admin", FirstName: "Ada", Email: "admin@localhost"}))
	return s
}

func TestList_CachesAndNotifies(t *testing.T) {
	store := loggedInStore(t)
	rec := &notify.Recorder{}
	fc := &fakeClient{UsersRet: []models.User{{Username: "alice"}, {Username: "bob"}}}
	svc := NewUserService(fc, store, rec, nil)
	ctx := context.Background()

	cached, err := svc.Cached(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	cached, err = svc.Cached(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, cached)

	assert.Equal(t, []notify.Notification{{Severity: notify.Success, Message: "2 user(s) loaded successfully."}}, rec.Notifications())
}

func TestList_ErrorKeepsOldCache(t *testing.T) {
	store := loggedInStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetUsers(ctx, []models.User{{Username: "old"}}))

	rec := &notify.Recorder{}
	svc := NewUserService(&fakeClient{UsersErr: apiError(http.StatusForbidden, "")}, store, rec, nil)

	_, err := svc.List(ctx)
	require.Error(t, err)

	cached, err := svc.Cached(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.User{{Username: "old"}}, cached)
	assert.Equal(t, []notify.Notification{{Severity: notify.Error, Message: common.DefaultErrorMessage}}, rec.Notifications())
}

func TestAdd_UsesLoggedInUsername(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{AddRet: &models.User{Username: "carol", FirstName: "Carol", LastName: "Jones"}}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	u, err := svc.Add(context.Background(), models.User{Username: "carol", Email: "carol@example.com", Active: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)

	current, _ := fc.LastForm.Value("currentUsername")
	assert.Equal(t, "admin", current)
	active, _ := fc.LastForm.Value("isActive")
	assert.Equal(t, "true", active)

	assert.Equal(t, []notify.Notification{{Severity: notify.Success, Message: "Carol Jones added successfully"}}, rec.Notifications())
}

func TestAddAndUpdate_AcceptBackendEmails(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{
		AddRet:    &models.User{Username: "ops", FirstName: "Ops"},
		UpdateRet: &models.User{Username: "ops", FirstName: "Ops"},
	}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.User{Username: "ops", Email: "ops@localhost"}, nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, "ops", models.User{Username: "ops", Email: "ops"}, nil)
	require.NoError(t, err)

	email, _ := fc.LastForm.Value("email")
	assert.Equal(t, "ops", email)
	assert.Equal(t, 2, fc.Calls)
}

func TestAdd_RequiresSession(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{}
	svc := NewUserService(fc, newStore(t), rec, nil)

	_, err := svc.Add(context.Background(), models.User{Username: "carol"}, nil)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.Zero(t, fc.Calls)
	require.Len(t, rec.Notifications(), 1)
	assert.Equal(t, notify.Error, rec.Notifications()[0].Severity)
}

func TestAdd_InvalidUser(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	_, err := svc.Add(context.Background(), models.User{Email: "carol@example.com"}, nil)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, fc.Calls)
	assert.Equal(t, "invalid input: Username is required", rec.Notifications()[0].Message)
}

func TestUpdate_RefreshesCurrentUserWhenEditingSelf(t *testing.T) {
	store := loggedInStore(t)
	rec := &notify.Recorder{}
	fc := &fakeClient{UpdateRet: &models.User{Username: "admin", FirstName: "Adele"}}
	svc := NewUserService(fc, store, rec, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "admin", models.User{Username: "admin", FirstName: "Adele"}, nil)
	require.NoError(t, err)

	me, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Adele", me.FirstName)

	current, _ := fc.LastForm.Value("currentUsername")
	assert.Equal(t, "admin", current)
	assert.Equal(t, "Adele updated successfully", rec.Notifications()[0].Message)
}

func TestUpdate_OtherUserLeavesCurrentUser(t *testing.T) {
	store := loggedInStore(t)
	fc := &fakeClient{UpdateRet: &models.User{Username: "bobby", FirstName: "Bob"}}
	svc := NewUserService(fc, store, &notify.Recorder{}, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "bob", models.User{Username: "bobby"}, nil)
	require.NoError(t, err)

	current, _ := fc.LastForm.Value("currentUsername")
	assert.Equal(t, "bob", current)
	me, _ := store.CurrentUser(ctx)
	assert.Equal(t, "admin", me.Username)
}

func TestDelete(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{DeleteRet: &models.CustomHTTPResponse{HTTPStatusCode: http.StatusNoContent}}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	require.NoError(t, svc.Delete(context.Background(), "bob"))
	assert.Equal(t, "bob", fc.LastUsername)
	assert.Equal(t, "bob deleted successfully", rec.Notifications()[0].Message)

	fc.DeleteErr = apiError(http.StatusForbidden, "YOU DO NOT HAVE ENOUGH PERMISSION")
	require.Error(t, svc.Delete(context.Background(), "bob"))
	assert.Equal(t, notify.Notification{Severity: notify.Error, Message: "YOU DO NOT HAVE ENOUGH PERMISSION"}, rec.Notifications()[1])
}

func TestResetPassword(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{ResetRet: &models.CustomHTTPResponse{Message: "AN EMAIL WITH A NEW PASSWORD WAS SENT TO: bob@example.com"}}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	require.NoError(t, svc.ResetPassword(context.Background(), "bob@example.com"))
	assert.Equal(t, "bob@example.com", fc.LastEmail)
	assert.Equal(t, "AN EMAIL WITH A NEW PASSWORD WAS SENT TO: bob@example.com", rec.Notifications()[0].Message)

	require.NoError(t, svc.ResetPassword(context.Background(), "admin@localhost"))
	assert.Equal(t, "admin@localhost", fc.LastEmail)

	err := svc.ResetPassword(context.Background(), "")
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, 2, fc.Calls)
}

func TestUpdateProfileImage_ForwardsProgress(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{Upload: []client.UploadEvent{
		{Type: client.UploadProgress, Loaded: 10, Total: 20},
		{Type: client.UploadProgress, Loaded: 20, Total: 20},
		{Type: client.UploadDone, Loaded: 20, Total: 20, User: &models.User{Username: "alice", FirstName: "Alice"}},
	}}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	var seen []int
	u, err := svc.UpdateProfileImage(context.Background(), "alice", &client.File{Name: "a.png", Data: []byte("x")},
		func(ev client.UploadEvent) { seen = append(seen, ev.Percent()) })
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, []int{50, 100}, seen)

	username, _ := fc.LastForm.Value("username")
	assert.Equal(t, "alice", username)
	assert.Equal(t, "Alice's profile image updated successfully", rec.Notifications()[0].Message)
}

func TestUpdateProfileImage_Failure(t *testing.T) {
	rec := &notify.Recorder{}
	fc := &fakeClient{Upload: []client.UploadEvent{
		{Type: client.UploadDone, Err: apiError(http.StatusBadRequest, "NOT AN IMAGE FILE")},
	}}
	svc := NewUserService(fc, loggedInStore(t), rec, nil)

	_, err := svc.UpdateProfileImage(context.Background(), "alice", &client.File{Name: "a.txt"}, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT AN IMAGE FILE", rec.Notifications()[0].Message)

	_, err = svc.UpdateProfileImage(context.Background(), "alice", nil, nil)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, 1, fc.Calls)
}
