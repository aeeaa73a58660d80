package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/foodgram-dev/foodgram/internal/testutils/http"
	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	typerr "github.com/foodgram-dev/foodgram/pkg/api/types/errors"
	apipaging "github.com/foodgram-dev/foodgram/pkg/api/types/paging"
	apisubsc "github.com/foodgram-dev/foodgram/pkg/api/types/subscriptions"
	apiuser "github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	rcpmock "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db/mock"
	usrmock "github.com/foodgram-dev/foodgram/pkg/domain/user/db/mock"
	"github.com/foodgram-dev/foodgram/pkg/media"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
	"github.com/foodgram-dev/foodgram/pkg/utils/try"

	"github.com/foodgram-dev/foodgram/cmd/foodgramd/handlers"
)

func TestUserRegisterHandler(t *testing.T) {

	t.Run("when the payload holds, it should create the account", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.GetByEmail = func(_ context.Context, email string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: %s", domerr.ErrMissing, email)
		}
		mckUser.Impl.GetByUsername = func(_ context.Context, username string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: %s", domerr.ErrMissing, username)
		}
		mckUser.Impl.New = func(_ context.Context, spec domain.UserSpec) (int, error) {
			return 7, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(e, "/api/users/", strings.NewReader(`{
			"email": "vasya@example.com",
			"username": "vasya.pupkin",
			"first_name": "Вася",
			"last_name": "Иванов",
			"password": "Qwerty123"
		}`))

		testee := handlers.UserRegisterHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusCreated {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusCreated)
		}

		actual := apiuser.Registered{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		expected := apiuser.Registered{
			Id:        7,
			Email:     "vasya@example.com",
			Username:  "vasya.pupkin",
			FirstName: "Вася",
			LastName:  "Иванов",
		}
		if actual != expected {
			t.Errorf("unmatch response: %+v, expected: %+v", actual, expected)
		}

		if len(mckUser.Calls.New) != 1 {
			t.Fatalf("New should be called once, but: %d", len(mckUser.Calls.New))
		}
		spec := mckUser.Calls.New[0]
		if spec.Email != "vasya@example.com" || spec.Username != "vasya.pupkin" {
			t.Errorf("unmatch spec: %+v", spec)
		}
		if spec.IsStaff || spec.IsSuperuser {
			t.Errorf("registration must not grant staff flags: %+v", spec)
		}
		if !auth.VerifyPassword(spec.HashedPassword, "Qwerty123") {
			t.Error("stored password hash does not verify")
		}
	})

	t.Run("when the email is taken, it should reject with 400", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.GetByEmail = func(_ context.Context, email string) (domain.User, error) {
			return activeUser(1), nil
		}
		mckUser.Impl.GetByUsername = func(_ context.Context, username string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: %s", domerr.ErrMissing, username)
		}

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/", strings.NewReader(`{
			"email": "user-1@example.com",
			"username": "newcomer",
			"first_name": "Вася",
			"last_name": "Иванов",
			"password": "Qwerty123"
		}`))

		testee := handlers.UserRegisterHandler(mckUser)
		expectFields(t, testee(c), typerr.Fields{"email": {apierr.MsgUnique}})
	})

	t.Run("when everything is missing, it should name every field", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/", strings.NewReader(`{}`))

		testee := handlers.UserRegisterHandler(mckUser)
		expectFields(t, testee(c), typerr.Fields{
			"email":      {apierr.MsgRequired},
			"username":   {apierr.MsgRequired},
			"first_name": {apierr.MsgRequired},
			"last_name":  {apierr.MsgRequired},
			"password":   {apierr.MsgRequired},
		})
	})

	t.Run("when values are out of shape, it should reject each with its own message", func(t *testing.T) {
		valid := map[string]string{
			"email":      "new@example.com",
			"username":   "newcomer",
			"first_name": "Вася",
			"last_name":  "Иванов",
			"password":   "Qwerty123",
		}

		for name, testcase := range map[string]struct {
			field    string
			value    string
			expected string
		}{
			"malformed email": {
				field: "email", value: "not-an-email",
				expected: apierr.MsgInvalidEmail,
			},
			"username with forbidden characters": {
				field: "username", value: "has space",
				expected: apierr.MsgInvalidValue,
			},
			"too long first name": {
				field: "first_name", value: strings.Repeat("б", domain.MaxNameLength+1),
				expected: apierr.MsgTooLong(domain.MaxNameLength),
			},
			"too short password": {
				field: "password", value: "1234567",
				expected: apierr.MsgPasswordTooShort(domain.MinPasswordLength),
			},
		} {
			t.Run(name, func(t *testing.T) {
				mckUser := usrmock.NewUserInterface()
				mckUser.Impl.GetByEmail = func(_ context.Context, email string) (domain.User, error) {
					return domain.User{}, fmt.Errorf("%w: %s", domerr.ErrMissing, email)
				}
				mckUser.Impl.GetByUsername = func(_ context.Context, username string) (domain.User, error) {
					return domain.User{}, fmt.Errorf("%w: %s", domerr.ErrMissing, username)
				}

				payload := map[string]string{}
				for k, v := range valid {
					payload[k] = v
				}
				payload[testcase.field] = testcase.value
				body := try.To(json.Marshal(payload)).OrFatal(t)

				e := echo.New()
				c, _ := httptestutil.Post(e, "/api/users/", strings.NewReader(string(body)))

				testee := handlers.UserRegisterHandler(mckUser)
				expectFields(t, testee(c), typerr.Fields{
					testcase.field: {testcase.expected},
				})
			})
		}
	})
}

func TestFindUsersHandler(t *testing.T) {

	t.Run("when the requester is anonymous, it should list profiles without relations", func(t *testing.T) {
		second := activeUser(2)
		second.Avatar = "users/avatars/second.png"

		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Find = func(
			_ context.Context, filter domain.UserFilter, window domain.Window,
		) (domain.Page[domain.User], error) {
			return domain.Page[domain.User]{
				Count: 2, Items: []domain.User{activeUser(1), second},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/")

		testee := handlers.FindUsersHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if len(mckUser.Calls.Find) != 1 {
			t.Fatalf("Find should be called once, but: %d", len(mckUser.Calls.Find))
		}
		window := mckUser.Calls.Find[0].Window
		if (window != domain.Window{Offset: 0, Limit: 6}) {
			t.Errorf("unmatch window: %+v", window)
		}

		page := apipaging.Page[apiuser.Profile]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &page); err != nil {
			t.Fatal(err)
		}
		if page.Count != 2 || page.Next != nil || page.Previous != nil {
			t.Errorf("unmatch envelope: %+v", page)
		}
		expected := []apiuser.Profile{
			{
				Email: "user-1@example.com", Id: 1, Username: "user-1",
				FirstName: "Имя", LastName: "Фамилия",
			},
			{
				Email: "user-2@example.com", Id: 2, Username: "user-2",
				FirstName: "Имя", LastName: "Фамилия",
				Avatar: "http://example.com/media/users/avatars/second.png",
			},
		}
		if !cmp.SliceEqWith(page.Results, expected, func(a, b apiuser.Profile) bool {
			return a.Equal(&b)
		}) {
			t.Errorf("unmatch results: %+v, expected: %+v", page.Results, expected)
		}
	})

	t.Run("when the requester is authenticated, it should mark whom they follow", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Find = func(
			_ context.Context, filter domain.UserFilter, window domain.Window,
		) (domain.Page[domain.User], error) {
			return domain.Page[domain.User]{
				Count: 2, Items: []domain.User{activeUser(2), activeUser(3)},
			}, nil
		}
		mckUser.Impl.Following = func(
			_ context.Context, userId int, authorIds []int,
		) (map[int]bool, error) {
			if userId != 1 {
				t.Errorf("unmatch user id: %d, expected: 1", userId)
			}
			if !cmp.SliceContentEq(authorIds, []int{2, 3}) {
				t.Errorf("unmatch author ids: %+v", authorIds)
			}
			return map[int]bool{3: true}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.FindUsersHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		page := apipaging.Page[apiuser.Profile]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &page); err != nil {
			t.Fatal(err)
		}
		if len(page.Results) != 2 {
			t.Fatalf("unmatch results: %+v", page.Results)
		}
		if page.Results[0].IsSubscribed || !page.Results[1].IsSubscribed {
			t.Errorf("unmatch is_subscribed: %+v", page.Results)
		}
	})

	t.Run("when a middle page is requested, it should link both neighbours", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Find = func(
			_ context.Context, filter domain.UserFilter, window domain.Window,
		) (domain.Page[domain.User], error) {
			if (window != domain.Window{Offset: 1, Limit: 1}) {
				t.Errorf("unmatch window: %+v", window)
			}
			return domain.Page[domain.User]{
				Count: 3, Items: []domain.User{activeUser(2)},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/?page=2&limit=1")

		testee := handlers.FindUsersHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		page := apipaging.Page[apiuser.Profile]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &page); err != nil {
			t.Fatal(err)
		}
		if page.Next == nil || *page.Next != "http://example.com/api/users/?limit=1&page=3" {
			t.Errorf("unmatch next: %v", page.Next)
		}
		if page.Previous == nil || *page.Previous != "http://example.com/api/users/?limit=1" {
			t.Errorf("unmatch previous: %v", page.Previous)
		}
	})

	t.Run("when the page is out of range, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Find = func(
			_ context.Context, filter domain.UserFilter, window domain.Window,
		) (domain.Page[domain.User], error) {
			return domain.Page[domain.User]{Count: 2}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/?page=9")

		testee := handlers.FindUsersHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})

	t.Run("when the page parameter is not a positive integer, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/?page=zero")

		testee := handlers.FindUsersHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestGetUserHandler(t *testing.T) {

	t.Run("when the user exists, it should show the profile", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			if !cmp.SliceEq(ids, []int{5}) {
				t.Errorf("unmatch ids: %+v", ids)
			}
			return map[int]domain.User{5: activeUser(5)}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/5/")
		c.SetPath("/api/users/:id/")
		c.SetParamNames("id")
		c.SetParamValues("5")

		testee := handlers.GetUserHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apiuser.Profile{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != 5 || actual.Username != "user-5" || actual.IsSubscribed {
			t.Errorf("unmatch profile: %+v", actual)
		}
	})

	t.Run("when the user does not exist, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/5/")
		c.SetPath("/api/users/:id/")
		c.SetParamNames("id")
		c.SetParamValues("5")

		testee := handlers.GetUserHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})

	t.Run("when the id is not a number, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/me-too/")
		c.SetPath("/api/users/:id/")
		c.SetParamNames("id")
		c.SetParamValues("me-too")

		testee := handlers.GetUserHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestGetMeHandler(t *testing.T) {

	t.Run("when the requester is authenticated, it should show their profile", func(t *testing.T) {
		me := activeUser(42)
		me.Avatar = "users/avatars/me.png"

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/me/")
		handlers.SetIdentity(c, handlers.Identity{User: me})

		testee := handlers.GetMeHandler()
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apiuser.Profile{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != 42 || actual.Avatar != "http://example.com/media/users/avatars/me.png" {
			t.Errorf("unmatch profile: %+v", actual)
		}
	})

	t.Run("when the requester is anonymous, it should reject with 401", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/me/")

		testee := handlers.GetMeHandler()
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusUnauthorized)
		}
	})
}

func TestPutAvatarHandler(t *testing.T) {

	t.Run("when a data URI is sent, it should store the image and answer its URL", func(t *testing.T) {
		root := t.TempDir()
		store := media.New(root)

		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.UpdateAvatar = func(_ context.Context, userId int, avatar string) (string, error) {
			return "", nil
		}

		body := try.To(json.Marshal(apiuser.SetAvatar{Avatar: pngURI(t)})).OrFatal(t)

		e := echo.New()
		c, respRec := httptestutil.Put(e, "/api/users/me/avatar/", strings.NewReader(string(body)))
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(42)})

		testee := handlers.PutAvatarHandler(mckUser, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusOK)
		}

		if len(mckUser.Calls.UpdateAvatar) != 1 {
			t.Fatalf("UpdateAvatar should be called once, but: %d", len(mckUser.Calls.UpdateAvatar))
		}
		stored := mckUser.Calls.UpdateAvatar[0]
		if stored.UserId != 42 {
			t.Errorf("unmatch user id: %d, expected: 42", stored.UserId)
		}
		if !strings.HasPrefix(stored.Avatar, media.UserAvatars+"/") {
			t.Errorf("avatar stored out of place: %s", stored.Avatar)
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(stored.Avatar))); err != nil {
			t.Errorf("stored file is not there: %s", err)
		}

		actual := apiuser.AvatarResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Avatar != "http://example.com/media/"+stored.Avatar {
			t.Errorf("unmatch avatar url: %s", actual.Avatar)
		}
	})

	t.Run("when the user had an avatar, the stale file should be removed", func(t *testing.T) {
		root := t.TempDir()
		store := media.New(root)
		prev := try.To(store.SaveDataURI(pngURI(t), media.UserAvatars)).OrFatal(t)

		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.UpdateAvatar = func(_ context.Context, userId int, avatar string) (string, error) {
			return prev, nil
		}

		body := try.To(json.Marshal(apiuser.SetAvatar{Avatar: pngURI(t)})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Put(e, "/api/users/me/avatar/", strings.NewReader(string(body)))
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(42)})

		testee := handlers.PutAvatarHandler(mckUser, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(prev))); !os.IsNotExist(err) {
			t.Errorf("stale avatar should be removed: %v", err)
		}
	})

	t.Run("when the payload is empty or no image, it should reject with 400", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			body     string
			expected typerr.Fields
		}{
			"no avatar": {
				body:     `{}`,
				expected: typerr.Fields{"avatar": {apierr.MsgRequired}},
			},
			"not an image": {
				body:     `{"avatar": "data:image/png;base64,bm90IGFuIGltYWdl"}`,
				expected: typerr.Fields{"avatar": {apierr.MsgInvalidImage}},
			},
		} {
			t.Run(name, func(t *testing.T) {
				store := media.New(t.TempDir())
				mckUser := usrmock.NewUserInterface()

				e := echo.New()
				c, _ := httptestutil.Put(e, "/api/users/me/avatar/", strings.NewReader(testcase.body))
				handlers.SetIdentity(c, handlers.Identity{User: activeUser(42)})

				testee := handlers.PutAvatarHandler(mckUser, store)
				expectFields(t, testee(c), testcase.expected)
			})
		}
	})
}

func TestDeleteAvatarHandler(t *testing.T) {

	t.Run("when the user has an avatar, it should drop record and file", func(t *testing.T) {
		root := t.TempDir()
		store := media.New(root)
		prev := try.To(store.SaveDataURI(pngURI(t), media.UserAvatars)).OrFatal(t)

		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.UpdateAvatar = func(_ context.Context, userId int, avatar string) (string, error) {
			if avatar != "" {
				t.Errorf("avatar should be cleared, but: %s", avatar)
			}
			return prev, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/users/me/avatar/")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(42)})

		testee := handlers.DeleteAvatarHandler(mckUser, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusNoContent {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusNoContent)
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(prev))); !os.IsNotExist(err) {
			t.Errorf("avatar file should be removed: %v", err)
		}
	})

	t.Run("when the user has no avatar, it should reject with 400", func(t *testing.T) {
		store := media.New(t.TempDir())
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.UpdateAvatar = func(_ context.Context, userId int, avatar string) (string, error) {
			return "", nil
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/users/me/avatar/")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(42)})

		testee := handlers.DeleteAvatarHandler(mckUser, store)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusBadRequest {
			t.Fatalf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusBadRequest)
		}
		actual, ok := echoErr.Message.(typerr.Error)
		if !ok {
			t.Fatalf("unexpected message: %#v", echoErr.Message)
		}
		if actual.Error != "Аватар не установлен" {
			t.Errorf("unmatch error: %s", actual.Error)
		}
	})
}

func TestSetPasswordHandler(t *testing.T) {
	hashed := func(t *testing.T, plain string) string {
		t.Helper()
		return try.To(auth.HashPassword(plain)).OrFatal(t)
	}

	t.Run("when the current password holds, it should store the new one", func(t *testing.T) {
		me := activeUser(42)
		me.HashedPassword = hashed(t, "old password")

		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.UpdatePassword = func(_ context.Context, userId int, hashedPassword string) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(e, "/api/users/set_password/", strings.NewReader(
			`{"current_password": "old password", "new_password": "new password"}`,
		))
		handlers.SetIdentity(c, handlers.Identity{User: me})

		testee := handlers.SetPasswordHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusNoContent {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusNoContent)
		}

		if len(mckUser.Calls.UpdatePassword) != 1 {
			t.Fatalf("UpdatePassword should be called once, but: %d", len(mckUser.Calls.UpdatePassword))
		}
		stored := mckUser.Calls.UpdatePassword[0]
		if stored.UserId != 42 {
			t.Errorf("unmatch user id: %d, expected: 42", stored.UserId)
		}
		if !auth.VerifyPassword(stored.HashedPassword, "new password") {
			t.Error("stored password hash does not verify")
		}
	})

	t.Run("when the current password does not hold, it should reject with 400", func(t *testing.T) {
		me := activeUser(42)
		me.HashedPassword = hashed(t, "old password")

		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/set_password/", strings.NewReader(
			`{"current_password": "not it", "new_password": "new password"}`,
		))
		handlers.SetIdentity(c, handlers.Identity{User: me})

		testee := handlers.SetPasswordHandler(mckUser)
		expectFields(t, testee(c), typerr.Fields{
			"current_password": {"Текущий пароль неверен"},
		})
	})

	t.Run("when the new password is too short, it should reject with 400", func(t *testing.T) {
		me := activeUser(42)
		me.HashedPassword = hashed(t, "old password")

		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/set_password/", strings.NewReader(
			`{"current_password": "old password", "new_password": "short"}`,
		))
		handlers.SetIdentity(c, handlers.Identity{User: me})

		testee := handlers.SetPasswordHandler(mckUser)
		expectFields(t, testee(c), typerr.Fields{
			"new_password": {apierr.MsgPasswordTooShort(domain.MinPasswordLength)},
		})
	})
}

func TestFindSubscriptionsHandler(t *testing.T) {

	t.Run("when subscriptions exist, it should list authors with their recipes", func(t *testing.T) {
		author := activeUser(7)
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Subscriptions = func(
			_ context.Context, userId int, recipesLimit int, window domain.Window,
		) (domain.Page[domain.Subscription], error) {
			return domain.Page[domain.Subscription]{
				Count: 1,
				Items: []domain.Subscription{
					{
						Author: author,
						Recipes: []domain.RecipeBody{
							publishedRecipe(10, author).RecipeBody,
							publishedRecipe(11, author).RecipeBody,
						},
						RecipesCount: 5,
					},
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/users/subscriptions/?recipes_limit=2")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.FindSubscriptionsHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if len(mckUser.Calls.Subscriptions) != 1 {
			t.Fatalf("Subscriptions should be called once, but: %d", len(mckUser.Calls.Subscriptions))
		}
		call := mckUser.Calls.Subscriptions[0]
		if call.UserId != 1 || call.RecipesLimit != 2 {
			t.Errorf("unmatch call: %+v", call)
		}
		if (call.Window != domain.Window{Offset: 0, Limit: 6}) {
			t.Errorf("unmatch window: %+v", call.Window)
		}

		page := apipaging.Page[apisubsc.WithRecipes]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &page); err != nil {
			t.Fatal(err)
		}
		if page.Count != 1 || len(page.Results) != 1 {
			t.Fatalf("unmatch envelope: %+v", page)
		}
		entry := page.Results[0]
		if entry.Id != 7 || !entry.IsSubscribed {
			t.Errorf("unmatch author: %+v", entry.Profile)
		}
		if len(entry.Recipes) != 2 || entry.RecipesCount != 5 {
			t.Errorf("unmatch recipes: %+v", entry)
		}
		if entry.Recipes[0].Image != "http://example.com/media/recipes/images/10.png" {
			t.Errorf("unmatch recipe image: %s", entry.Recipes[0].Image)
		}
	})

	t.Run("when no recipes_limit is given, it should not truncate", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Subscriptions = func(
			_ context.Context, userId int, recipesLimit int, window domain.Window,
		) (domain.Page[domain.Subscription], error) {
			if recipesLimit != -1 {
				t.Errorf("unmatch recipes limit: %d, expected: -1", recipesLimit)
			}
			return domain.Page[domain.Subscription]{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/subscriptions/")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.FindSubscriptionsHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("when the requester is anonymous, it should reject with 401", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/subscriptions/")

		testee := handlers.FindSubscriptionsHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusUnauthorized)
		}
	})
}

func TestSubscribeHandler(t *testing.T) {
	author := activeUser(7)

	t.Run("when the author exists, it should follow and answer the subscription", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{7: author}, nil
		}
		mckUser.Impl.Subscribe = func(_ context.Context, userId int, authorId int) error {
			return nil
		}

		mckRecipe := rcpmock.NewRecipeInterface()
		mckRecipe.Impl.Find = func(
			_ context.Context, filter domain.RecipeFilter, window domain.Window,
		) (domain.Page[domain.Recipe], error) {
			if filter.Author == nil || *filter.Author != 7 {
				t.Errorf("unmatch filter: %+v", filter)
			}
			if (window != domain.Window{}) {
				t.Errorf("window should be boundless, but: %+v", window)
			}
			return domain.Page[domain.Recipe]{
				Count: 3,
				Items: []domain.Recipe{
					publishedRecipe(12, author),
					publishedRecipe(11, author),
					publishedRecipe(10, author),
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(e, "/api/users/7/subscribe/?recipes_limit=2", nil)
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.SubscribeHandler(mckUser, mckRecipe)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusCreated {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusCreated)
		}

		if !cmp.SliceEq(mckUser.Calls.Subscribe, []domain.Follow{{UserId: 1, AuthorId: 7}}) {
			t.Errorf("unmatch Subscribe calls: %+v", mckUser.Calls.Subscribe)
		}

		actual := apisubsc.WithRecipes{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Id != 7 || !actual.IsSubscribed {
			t.Errorf("unmatch author: %+v", actual.Profile)
		}
		if len(actual.Recipes) != 2 || actual.RecipesCount != 3 {
			t.Errorf("recipes should be truncated to 2 of 3, but: %+v", actual)
		}
		if actual.Recipes[0].Id != 12 || actual.Recipes[1].Id != 11 {
			t.Errorf("unmatch recipes: %+v", actual.Recipes)
		}
	})

	t.Run("when the requester is the author, it should reject with 400", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{1: activeUser(1)}, nil
		}
		mckUser.Impl.Subscribe = func(_ context.Context, userId int, authorId int) error {
			return fmt.Errorf("%w: user %d cannot follow itself", domain.ErrInvalid, userId)
		}
		mckRecipe := rcpmock.NewRecipeInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/1/subscribe/", nil)
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("1")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.SubscribeHandler(mckUser, mckRecipe)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusBadRequest {
			t.Fatalf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusBadRequest)
		}
		actual, ok := echoErr.Message.(typerr.Errors)
		if !ok {
			t.Fatalf("unexpected message: %#v", echoErr.Message)
		}
		if actual.Errors != "Нельзя подписаться на самого себя" {
			t.Errorf("unmatch errors: %s", actual.Errors)
		}
	})

	t.Run("when already following, it should reject with 400", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{7: author}, nil
		}
		mckUser.Impl.Subscribe = func(_ context.Context, userId int, authorId int) error {
			return fmt.Errorf("%w: follow exists", domerr.ErrConflict)
		}
		mckRecipe := rcpmock.NewRecipeInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/7/subscribe/", nil)
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.SubscribeHandler(mckUser, mckRecipe)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusBadRequest {
			t.Fatalf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusBadRequest)
		}
		actual, ok := echoErr.Message.(typerr.Errors)
		if !ok {
			t.Fatalf("unexpected message: %#v", echoErr.Message)
		}
		if actual.Errors != "Вы уже подписаны на этого пользователя" {
			t.Errorf("unmatch errors: %s", actual.Errors)
		}
	})

	t.Run("when the author does not exist, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{}, nil
		}
		mckRecipe := rcpmock.NewRecipeInterface()

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/7/subscribe/", nil)
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.SubscribeHandler(mckUser, mckRecipe)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestUnsubscribeHandler(t *testing.T) {

	t.Run("when following, it should stop following", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{7: activeUser(7)}, nil
		}
		mckUser.Impl.Unsubscribe = func(_ context.Context, userId int, authorId int) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/users/7/subscribe/")
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.UnsubscribeHandler(mckUser)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusNoContent {
			t.Errorf("unmatch status code: %d, expected: %d", respRec.Code, http.StatusNoContent)
		}
		if !cmp.SliceEq(mckUser.Calls.Unsubscribe, []domain.Follow{{UserId: 1, AuthorId: 7}}) {
			t.Errorf("unmatch Unsubscribe calls: %+v", mckUser.Calls.Unsubscribe)
		}
	})

	t.Run("when not following, it should reject with 400", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{7: activeUser(7)}, nil
		}
		mckUser.Impl.Unsubscribe = func(_ context.Context, userId int, authorId int) error {
			return fmt.Errorf("%w: no follow", domerr.ErrMissing)
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/users/7/subscribe/")
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.UnsubscribeHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusBadRequest {
			t.Fatalf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusBadRequest)
		}
		actual, ok := echoErr.Message.(typerr.Detail)
		if !ok {
			t.Fatalf("unexpected message: %#v", echoErr.Message)
		}
		if actual.Detail != "Подписка не существует." {
			t.Errorf("unmatch detail: %s", actual.Detail)
		}
	})

	t.Run("when the author does not exist, it should reject with 404", func(t *testing.T) {
		mckUser := usrmock.NewUserInterface()
		mckUser.Impl.Get = func(_ context.Context, ids []int) (map[int]domain.User, error) {
			return map[int]domain.User{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/users/7/subscribe/")
		c.SetPath("/api/users/:id/subscribe/")
		c.SetParamNames("id")
		c.SetParamValues("7")
		handlers.SetIdentity(c, handlers.Identity{User: activeUser(1)})

		testee := handlers.UnsubscribeHandler(mckUser)
		echoErr := statusOf(t, testee(c))
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code: %d, expected: %d", echoErr.Code, http.StatusNotFound)
		}
	})
}
