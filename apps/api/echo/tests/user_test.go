package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/elimuhq/elimu/apps/api/echo"
	"github.com/elimuhq/elimu/core/user"
	testutil "github.com/elimuhq/elimu/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "LeakedPwd247", user.StudentRoles, true)
	testutil.CreateUser(t, usrRepo, "Sleeper", "sleeper", "sleeper@test.ug", "LeakedPwd247", user.StudentRoles, false)

	login := func(uname, pwd string) []byte {
		return marchallObj(t, map[string]string{"username": uname, "password": pwd})
	}

	tests := []httpTest{
		{
			name: "empty payload", body: login("", ""), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown user", body: login("ghost", "lol"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: login("janedoe", "lol"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: login("sleeper", "LeakedPwd247"), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "login with username", body: login("janedoe", "LeakedPwd247"), wantCode: http.StatusOK},
		{name: "login with email", body: login("jane@test.ug", "LeakedPwd247"), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != http.StatusOK {
				t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			var res struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			claims := new(echoapi.Claims)
			parser := jwt.Parser{}
			if _, _, err := parser.ParseUnverified(res.Token, claims); err != nil {
				t.Fatalf("parsing token: %v", err)
			}
			if claims.Subject != student.ID {
				t.Errorf("claims.Subject = %s, want %s", claims.Subject, student.ID)
			}
			if !claims.IsStudent || claims.IsAdmin {
				t.Errorf("claims portals = student:%v admin:%v, want student only", claims.IsStudent, claims.IsAdmin)
			}
		})
	}
}

func Test_userApi_tokenRefresh(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "", user.StudentRoles, true)

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/token-refresh")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Refresh", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, student))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if res.Token == "" {
			t.Error("empty refreshed token")
		}
	})
}

func Test_userApi_query(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "", user.StudentRoles, true)
	lecturer := testutil.CreateUser(t, usrRepo, "John", "johndoe", "john@test.ug", "", user.LecturerRoles, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.ug", "", user.AdminRoles, true)

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallList(t, student, lecturer, admin),
		},
		{
			name: "search=jane", path: "/v1/users?search=jane", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallList(t, student),
		},
		{
			name: "role=lecturer:", path: "/v1/users?role=lecturer%3A", token: adminToken, wantCode: http.StatusOK,
			wantData: marchallList(t, lecturer),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_detail(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Jane", "janedoe", "jane@test.ug", "", user.StudentRoles, true)
	other := testutil.CreateUser(t, usrRepo, "John", "johndoe", "john@test.ug", "", user.StudentRoles, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.ug", "", user.AdminRoles, true)

	tests := []httpTest{
		{
			name: "Own detail", path: "/v1/users/" + student.ID, token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "Someone else's detail is hidden", path: "/v1/users/" + other.ID, token: getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Admin sees all", path: "/v1/users/" + other.ID, token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, other),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
