//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"dorm-services/internal/handler/api"
	resdto "dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/queries"
	"dorm-services/tests/common/builder"
	"dorm-services/tests/common/httptest"
	"dorm-services/tests/common/testutil"
	commandsmock "dorm-services/tests/mock/commands"
	queriesmock "dorm-services/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ComplaintHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockComplaintCommands
	mockQueries  *queriesmock.MockComplaintQueries
	handler      *api.ComplaintHandler
}

func (s *ComplaintHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockComplaintCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockComplaintQueries(s.mockCtrl)
	s.handler = api.NewComplaintHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/maintenance", s.handler.Submit)
	s.router.GET("/maintenance/student/:studentId", s.handler.ListByStudent)
}

func (s *ComplaintHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestComplaintHandlerSuite(t *testing.T) {
	suite.Run(t, new(ComplaintHandlerTestSuite))
}

type testCaseComplaint struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
	expectKind string
}

func (s *ComplaintHandlerTestSuite) TestSubmit() {
	url := "/maintenance"
	b := builder.NewComplaintBuilder()
	reqBody := b.BuildSubmitRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), reqBody).Return(&view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.ComplaintResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("received", resp.Status)
	})

	s.Run("error: binding limits", func() {
		cases := []testCaseComplaint{
			{name: "title boundary OK (200 chars)", mutate: testutil.Field("title", strings.Repeat("가", 200)), expectCode: http.StatusCreated},
			{name: "title too long (201 chars)", mutate: testutil.Field("title", strings.Repeat("가", 201)), expectCode: http.StatusBadRequest, expectKind: httperr.KindInvalidField},
			{name: "description too long", mutate: testutil.Field("description", strings.Repeat("a", 4001)), expectCode: http.StatusBadRequest, expectKind: httperr.KindInvalidField},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&view, nil)
				}
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectKind)
				}
			})
		}
	})

	s.Run("error: use case validation", func() {
		cases := []struct {
			name       string
			err        error
			expectKind string
		}{
			{name: "missing field", err: errs.ErrMissingField, expectKind: httperr.KindMissingField},
			{name: "bad urgency", err: errs.ErrInvalidField, expectKind: httperr.KindInvalidField},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, testutil.Field("room", nil)), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.expectKind)
			})
		}
	})
}

func (s *ComplaintHandlerTestSuite) TestListByStudent() {
	views := []queries.ComplaintView{builder.NewComplaintBuilder().BuildView()}
	s.mockQueries.EXPECT().ListByStudent(gomock.Any(), "20231234").Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/maintenance/student/20231234", nil, "")

	var resp []resdto.ComplaintResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	s.Require().Len(resp, 1)
	s.Equal(views[0].ID, resp[0].ID)
}
