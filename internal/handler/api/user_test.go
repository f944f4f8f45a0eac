//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/handler/api"
	resdto "gin-jobqueue/internal/handler/dto/response"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/pkg/ptr"
	"gin-jobqueue/internal/testutil/httptest"
	commandsmock "gin-jobqueue/internal/testutil/mock/commands"
	queriesmock "gin-jobqueue/internal/testutil/mock/queries"
	"gin-jobqueue/internal/usecase/commands"
	"gin-jobqueue/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.UserHandler
	callerID     uuid.UUID
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewUserHandler(s.mockCommands, s.mockQueries)
	s.callerID = uuid.New()
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) routerAs(role user.Role) *gin.Engine {
	r := gin.New()
	auth := fakeAuth(s.callerID, role)
	r.GET("/users/:id", auth, s.handler.Get)
	r.PATCH("/users/:id", auth, s.handler.Update)
	return r
}

func (s *UserHandlerTestSuite) TestGet() {
	view := &queries.UserView{
		ID:       s.callerID,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "user",
		JoinDate: testNow,
	}

	s.Run("正常系: 本人は取得できる", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.callerID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodGet, "/users/"+s.callerID.String(), nil, "token")

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("alice", body.Username)
		s.NotContains(rec.Body.String(), "password")
	})

	s.Run("正常系: adminは他人を取得できる", func() {
		other := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), other).Return(&queries.UserView{ID: other}, nil)

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleAdmin), http.MethodGet, "/users/"+other.String(), nil, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("異常系: 一般ユーザーが他人を取得すると403", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodGet, "/users/"+uuid.NewString(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "insufficient permissions")
	})

	s.Run("異常系: 存在しないと404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.callerID).
			Return(nil, errs.Mark(errs.New("user not found"), errs.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodGet, "/users/"+s.callerID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("異常系: 不正なIDは400", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleAdmin), http.MethodGet, "/users/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("異常系: 未認証は401", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodGet, "/users/"+s.callerID.String(), nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *UserHandlerTestSuite) TestUpdate() {
	url := "/users/" + s.callerID.String()

	s.Run("正常系: 202を返す", func() {
		j := newTestJob(s.T(), job.TypeUserUpdate)
		s.mockCommands.EXPECT().Update(gomock.Any(),
			commands.Actor{ID: s.callerID, Role: user.RoleUser},
			s.callerID,
			commands.UpdateUserInput{Username: ptr.To("alice2")},
		).Return(j, nil)

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodPatch, url,
			map[string]any{"username": "alice2"}, "token")

		var body resdto.AcceptedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal(j.ID(), body.JobID)
	})

	s.Run("異常系: 空のパッチは400", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodPatch, url, map[string]any{}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "no fields to update")
	})

	s.Run("異常系: 不正なロールは400", func() {
		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleAdmin), http.MethodPatch, url,
			map[string]any{"role": "root"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("異常系: 権限不足は403", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrForbidden)

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodPatch, url,
			map[string]any{"role": "admin"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "insufficient permissions")
	})

	s.Run("異常系: メール重複は409", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrEmailTaken)

		rec := httptest.PerformRequest(s.T(), s.routerAs(user.RoleUser), http.MethodPatch, url,
			map[string]any{"email": "taken@example.com"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})
}
