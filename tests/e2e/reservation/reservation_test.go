//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"dorm-services/internal/handler/dto/request"
	"dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/tests/common/authtest"
	"dorm-services/tests/common/dbtest"
	"dorm-services/tests/common/httptest"
	"dorm-services/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	date            = "2025-03-20"
	slot            = "10:00-11:00"
)

type reservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func booking(spaceID, studentID string) request.CreateReservationRequest {
	return request.CreateReservationRequest{
		SpaceID:     spaceID,
		Date:        date,
		TimeSlot:    slot,
		StudentID:   studentID,
		StudentName: "학생 " + studentID,
	}
}

func (s *reservationSuite) create(req request.CreateReservationRequest) response.ReservationResponse {
	var res response.ReservationResponse
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, req, "")
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	return res
}

func (s *reservationSuite) availability(spaceID string) response.AvailabilityResponse {
	var res response.AvailabilityResponse
	url := fmt.Sprintf("%s/availability?spaceId=%s&date=%s", reservationsURL, spaceID, date)
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "")
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
	return res
}

func slotOf(t *testing.T, res response.AvailabilityResponse, label string) response.SlotResponse {
	t.Helper()
	for _, sl := range res.Slots {
		if sl.TimeSlot == label {
			return sl
		}
	}
	require.Failf(t, "slot missing", "no slot %s", label)
	return response.SlotResponse{}
}

func (s *reservationSuite) TestListSpaces() {
	s.Run("default catalog", func() {
		var res response.SpacesResponse
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/spaces", nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Len(res.Spaces, 3)
		s.Len(res.TimeSlots, 12)
	})
}

func (s *reservationSuite) TestWaitlistPromotion() {
	s.Run("cancel promotes the oldest waitlisted booking", func() {
		t := s.T()

		first := s.create(booking("ROOM_A", "20230001"))
		second := s.create(booking("ROOM_A", "20230002"))
		third := s.create(booking("ROOM_A", "20230003"))
		fourth := s.create(booking("ROOM_A", "20230004"))

		require.Equal(t, "confirmed", first.Status)
		require.Equal(t, "confirmed", second.Status)
		require.Equal(t, "waitlist", third.Status)
		require.Equal(t, "waitlist", fourth.Status)

		sl := slotOf(t, s.availability("ROOM_A"), slot)
		require.Equal(t, 2, sl.Confirmed)
		require.Equal(t, 0, sl.Available)

		var canceled response.CancelReservationResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+first.ID.String(), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &canceled)
		require.Equal(t, "canceled", canceled.Canceled.Status)
		require.NotNil(t, canceled.Promoted)
		require.Equal(t, third.ID, canceled.Promoted.ID)
		require.Equal(t, "confirmed", canceled.Promoted.Status)

		sl = slotOf(t, s.availability("ROOM_A"), slot)
		require.Equal(t, 2, sl.Confirmed)

		// Canceling twice is a not found, not a second promotion.
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+first.ID.String(), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, httperr.KindNotFound)
	})

	s.Run("canceling a waitlisted booking promotes nobody", func() {
		t := s.T()

		s.create(booking("ROOM_B", "20230001"))
		s.create(booking("ROOM_B", "20230002"))
		waiting := s.create(booking("ROOM_B", "20230003"))

		var canceled response.CancelReservationResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+waiting.ID.String(), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &canceled)
		require.Nil(t, canceled.Promoted)
		require.Contains(t, w.Body.String(), `"promoted":null`)
	})
}

func (s *reservationSuite) TestCreateReservation_Errors() {
	tests := []struct {
		name           string
		mutate         func(*request.CreateReservationRequest)
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "unknown space",
			mutate:         func(r *request.CreateReservationRequest) { r.SpaceID = "GYM" },
			expectedStatus: http.StatusBadRequest,
			expectedKind:   httperr.KindInvalidSpace,
		},
		{
			name:           "missing student id",
			mutate:         func(r *request.CreateReservationRequest) { r.StudentID = "  " },
			expectedStatus: http.StatusBadRequest,
			expectedKind:   httperr.KindMissingField,
		},
		{
			name:           "malformed date",
			mutate:         func(r *request.CreateReservationRequest) { r.Date = "2025/03/20" },
			expectedStatus: http.StatusBadRequest,
			expectedKind:   httperr.KindInvalidField,
		},
		{
			name:           "unknown slot",
			mutate:         func(r *request.CreateReservationRequest) { r.TimeSlot = "08:00-09:00" },
			expectedStatus: http.StatusBadRequest,
			expectedKind:   httperr.KindInvalidField,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := booking("HALL_1", "20230001")
			tt.mutate(&req)

			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, req, "")
			httptest.AssertErrorResponse(s.T(), w, tt.expectedStatus, tt.expectedKind)
			s.Equal(0, dbtest.CountRows(s.T(), s.DB, "reservations"))
		})
	}
}

func (s *reservationSuite) TestDuplicateBooking() {
	s.Run("same student and bucket twice", func() {
		s.create(booking("HALL_1", "20230001"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, booking("HALL_1", "20230001"), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, httperr.KindDuplicateBooking)
	})

	s.Run("rebooking after cancel is allowed", func() {
		first := s.create(booking("HALL_1", "20230001"))
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, reservationsURL+"/"+first.ID.String(), nil, "")
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		again := s.create(booking("HALL_1", "20230001"))
		s.Equal("confirmed", again.Status)
	})

	s.Run("legacy cancelled spelling does not block", func() {
		dbtest.InsertRawReservation(s.T(), s.DB, "HALL_1", date, slot, "20230009", " Cancelled ",
			time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

		again := s.create(booking("HALL_1", "20230009"))
		s.Equal("confirmed", again.Status)
	})
}

// The bucket lock serializes concurrent writers, so capacity holds under load.
func (s *reservationSuite) TestConcurrentBookings() {
	s.Run("capacity is never exceeded", func() {
		t := s.T()
		const students = 8

		var wg sync.WaitGroup
		codes := make([]int, students)
		for i := range students {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					booking("ROOM_A", fmt.Sprintf("2023%04d", i)), "")
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		for _, code := range codes {
			require.Equal(t, http.StatusCreated, code)
		}
		require.Equal(t, 2, slotOf(t, s.availability("ROOM_A"), slot).Confirmed)
	})
}

func (s *reservationSuite) TestMyReservations() {
	s.Run("only active bookings of the student", func() {
		t := s.T()
		kept := s.create(booking("HALL_1", "20230001"))
		gone := s.create(booking("ROOM_A", "20230001"))
		s.create(booking("ROOM_A", "20230002"))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+gone.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res []response.ReservationResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/my?studentId=20230001", nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Len(t, res, 1)
		require.Equal(t, kept.ID, res[0].ID)
		require.Equal(t, "다목적홀 1", res[0].SpaceName)
	})
}

func (s *reservationSuite) TestAdminReservations() {
	s.Run("list requires a session", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/admin/reservations?spaceId=HALL_1&date="+date, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, httperr.KindUnauthenticated)
	})

	s.Run("list includes canceled and purge removes them", func() {
		t := s.T()
		token := authtest.LoginAdmin(t, s.Router)

		active := s.create(booking("HALL_1", "20230001"))
		canceled := s.create(booking("HALL_1", "20230002"))
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+canceled.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		listURL := "/api/admin/reservations?spaceId=HALL_1&date=" + date
		var res []response.ReservationResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Len(t, res, 2)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			"/api/admin/reservations/"+active.ID.String()+"/purge", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, httperr.KindReservationActive)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			"/api/admin/reservations/"+canceled.ID.String()+"/purge", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		res = nil
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Len(t, res, 1)
		require.Equal(t, active.ID, res[0].ID)
	})
}
