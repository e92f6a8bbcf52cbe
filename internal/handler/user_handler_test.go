package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizza-shop/internal/model"
	"pizza-shop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_List(t *testing.T) {
	users := []model.User{
		{ID: uuid.New(), Username: "jan", Cart: model.EmptyCart()},
		{ID: uuid.New(), Username: "ola", Cart: model.EmptyCart()},
	}

	mockUsers := new(MockUserService)
	mockUsers.On("List", mock.Anything).Return(users, nil)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["users"], 2)
}

func TestUserHandler_Get_FullRecordForOwner(t *testing.T) {
	owner := &model.User{
		ID: uuid.New(), FirstName: "Jan", LastName: "Kowalski",
		Email: "jan@example.com", Username: "jan", Cart: model.EmptyCart(),
	}

	mockUsers := new(MockUserService)
	mockUsers.On("Get", mock.Anything, owner.ID, owner).Return(owner, true, nil)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/users/"+owner.ID.String(), nil)
	req.SetPathValue("id", owner.ID.String())
	req = authedRequest(req, owner, uuid.New())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	// The full record carries the id and the embedded cart.
	assert.Equal(t, owner.ID.String(), user["id"])
	assert.Contains(t, user, "cart")
}

func TestUserHandler_Get_PublicProjectionForStranger(t *testing.T) {
	target := &model.User{
		ID: uuid.New(), FirstName: "Jan", LastName: "Kowalski",
		Email: "jan@example.com", Username: "jan", Cart: model.EmptyCart(),
	}
	stranger := &model.User{ID: uuid.New(), Username: "ola"}

	mockUsers := new(MockUserService)
	mockUsers.On("Get", mock.Anything, target.ID, stranger).Return(target, false, nil)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/users/"+target.ID.String(), nil)
	req.SetPathValue("id", target.ID.String())
	req = authedRequest(req, stranger, uuid.New())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "jan", user["username"])
	// The public projection hides the id, cart and admin flag.
	assert.NotContains(t, user, "id")
	assert.NotContains(t, user, "cart")
	assert.NotContains(t, user, "admin")
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	requester := &model.User{ID: uuid.New()}
	id := uuid.New()

	mockUsers := new(MockUserService)
	mockUsers.On("Get", mock.Anything, id, requester).Return(nil, false, model.ErrUserNotFound)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/users/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	req = authedRequest(req, requester, uuid.New())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The user does not exist", decodeBody(t, rec)["message"])
}

func TestUserHandler_Patch(t *testing.T) {
	owner := &model.User{ID: uuid.New(), FirstName: "Jan", Username: "jan", Cart: model.EmptyCart()}

	mockUsers := new(MockUserService)
	mockUsers.On("Patch", mock.Anything, owner.ID, owner, mock.AnythingOfType("service.UserPatch")).
		Run(func(args mock.Arguments) {
			patch := args.Get(3).(service.UserPatch)
			require.NotNil(t, patch.FirstName)
			assert.Equal(t, "Janusz", *patch.FirstName)
			assert.Nil(t, patch.LastName)
			assert.Nil(t, patch.Username)
		}).
		Return(owner, nil)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPatch, "/users/"+owner.ID.String(),
		strings.NewReader(`{"firstName":"Janusz"}`))
	req.SetPathValue("id", owner.ID.String())
	req = authedRequest(req, owner, uuid.New())
	rec := httptest.NewRecorder()

	h.Patch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_Patch_UsernameTaken(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Username: "jan"}

	mockUsers := new(MockUserService)
	mockUsers.On("Patch", mock.Anything, owner.ID, owner, mock.Anything).
		Return(nil, model.ErrUsernameTaken)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPatch, "/users/"+owner.ID.String(),
		strings.NewReader(`{"username":"ola"}`))
	req.SetPathValue("id", owner.ID.String())
	req = authedRequest(req, owner, uuid.New())
	rec := httptest.NewRecorder()

	h.Patch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is already taken", decodeBody(t, rec)["message"])
}

func TestUserHandler_Patch_Denied(t *testing.T) {
	target := uuid.New()
	stranger := &model.User{ID: uuid.New(), Username: "ola"}

	mockUsers := new(MockUserService)
	mockUsers.On("Patch", mock.Anything, target, stranger, mock.Anything).
		Return(nil, model.ErrUnauthorised)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodPatch, "/users/"+target.String(),
		strings.NewReader(`{"firstName":"Nope"}`))
	req.SetPathValue("id", target.String())
	req = authedRequest(req, stranger, uuid.New())
	rec := httptest.NewRecorder()

	h.Patch(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, rec)["message"])
}

func TestUserHandler_Delete(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "jan", Cart: model.EmptyCart()}

	mockUsers := new(MockUserService)
	mockUsers.On("Delete", mock.Anything, user.ID).Return(user, nil)

	h := NewUserHandler(mockUsers, zerolog.Nop())
	req := httptest.NewRequest(http.MethodDelete, "/users/"+user.ID.String(), nil)
	req.SetPathValue("id", user.ID.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeBody(t, rec)["user"])
}
