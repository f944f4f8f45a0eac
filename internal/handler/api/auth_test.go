//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/handler/api"
	reqdto "gin-jobqueue/internal/handler/dto/request"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/pkg/cookie"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/testutil"
	"gin-jobqueue/internal/testutil/authtest"
	"gin-jobqueue/internal/testutil/httptest"
	commandsmock "gin-jobqueue/internal/testutil/mock/commands"
	usecasemock "gin-jobqueue/internal/testutil/mock/usecase"
	"gin-jobqueue/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockTokens   *usecasemock.MockTokenValidator
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	cfg := config.NewTestConfig()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockTokens = usecasemock.NewMockTokenValidator(s.mockCtrl)
	h := api.NewAuthHandler(s.mockCommands, authtest.NewJWTHelper(cfg.JWT).Service(), s.mockTokens, cfg)

	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/logout", h.Logout)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := reqdto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	s.Run("正常系: 202とjobIdを返す", func() {
		j := newTestJob(s.T(), job.TypeUserInsert)
		s.mockCommands.EXPECT().Register(gomock.Any(), commands.RegisterInput{
			Username:       "alice",
			Email:          "alice@example.com",
			Password:       "secret1",
			IdempotencyKey: "key-1",
		}).Return(j, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "",
			httptest.WithHeader("Idempotency-Key", " key-1 "))

		var body resdto.AcceptedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal(j.ID(), body.JobID)
		s.Equal("User registration queued successfully", body.Message)
	})

	s.Run("異常系: バリデーションエラーは400", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "username短すぎ", mutate: testutil.Field("username", "ab")},
			{name: "username長すぎ", mutate: testutil.Field("username", strings.Repeat("a", 31))},
			{name: "email不正", mutate: testutil.Field("email", "not-an-email")},
			{name: "password短すぎ", mutate: testutil.Field("password", "12345")},
			{name: "password欠落", mutate: testutil.Field("password", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("異常系: メール重複は409", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, commands.ErrEmailTaken)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "user already exists with this email")
	})

	s.Run("異常系: ストアエラーは500で詳細を隠す", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("connection refused"), errs.ErrStore))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to queue user registration")
		s.NotContains(rec.Body.String(), "connection refused")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := reqdto.LoginRequest{Email: "alice@example.com", Password: "secret1"}

	s.Run("正常系: トークンとcookieを返す", func() {
		userID := uuid.New()
		s.mockCommands.EXPECT().Login(gomock.Any(), "alice@example.com", "secret1").Return(&commands.LoginResult{
			UserID:      userID,
			Username:    "alice",
			Email:       "alice@example.com",
			Role:        user.RoleUser,
			AccessToken: "token-123",
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("token-123", body.Token)
		s.Equal(userID, body.User.ID)
		s.Equal("user", body.User.Role)
		s.Contains(rec.Header().Get("Set-Cookie"), cookie.AccessTokenCookieName+"=token-123")
	})

	s.Run("異常系: 認証情報不正は401", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, commands.ErrInvalidCredentials)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "invalid credentials")
	})

	s.Run("異常系: email欠落は400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("email", nil)), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("トークンなしでもCookieを削除する", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")

		s.Equal(http.StatusNoContent, rec.Code)
		s.Contains(rec.Header().Get("Set-Cookie"), cookie.AccessTokenCookieName+"=;")
	})

	s.Run("Bearerトークンのキャッシュを破棄する", func() {
		s.mockTokens.EXPECT().Forget("tok-1")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "tok-1")

		s.Equal(http.StatusNoContent, rec.Code)
	})
}
