package httperr

import (
	"net/http"

	"dorm-services/internal/pkg/errs"
)

const (
	KindInvalidSpace       = "INVALID_SPACE"
	KindMissingField       = "MISSING_FIELD"
	KindInvalidField       = "INVALID_FIELD"
	KindInvalidStatus      = "INVALID_STATUS"
	KindBadRequest         = "BAD_REQUEST"
	KindDuplicateBooking   = "DUPLICATE_BOOKING"
	KindNotFound           = "NOT_FOUND"
	KindReservationActive  = "RESERVATION_ACTIVE"
	KindConflict           = "CONFLICT"
	KindStorageUnavailable = "STORAGE_UNAVAILABLE"
	KindUnauthenticated    = "UNAUTHENTICATED"
	KindInternal           = "INTERNAL"
)

type Mapping struct {
	Status  int
	Kind    string
	Message string
}

type rule struct {
	sentinel error
	mapping  Mapping
}

// Order matters: an error can carry several marks, the specific ones are listed first.
var rules = []rule{
	{errs.ErrInvalidSpace, Mapping{http.StatusBadRequest, KindInvalidSpace, "유효하지 않은 공간입니다."}},
	{errs.ErrMissingField, Mapping{http.StatusBadRequest, KindMissingField, "필수 항목이 누락되었습니다."}},
	{errs.ErrInvalidField, Mapping{http.StatusBadRequest, KindInvalidField, "입력값 형식이 올바르지 않습니다."}},
	{errs.ErrInvalidComplaintStatus, Mapping{http.StatusBadRequest, KindInvalidStatus, "유효하지 않은 상태입니다."}},
	{errs.ErrDuplicateBooking, Mapping{http.StatusConflict, KindDuplicateBooking, "이미 해당 시간대에 예약이 있습니다."}},
	{errs.ErrReservationNotFound, Mapping{http.StatusNotFound, KindNotFound, "예약을 찾을 수 없습니다."}},
	{errs.ErrComplaintNotFound, Mapping{http.StatusNotFound, KindNotFound, "민원을 찾을 수 없습니다."}},
	{errs.ErrReservationActive, Mapping{http.StatusConflict, KindReservationActive, "취소된 예약만 삭제할 수 있습니다."}},
	{errs.ErrConflict, Mapping{http.StatusConflict, KindConflict, "요청이 현재 상태와 충돌합니다."}},
	{errs.ErrStorageUnavailable, Mapping{http.StatusServiceUnavailable, KindStorageUnavailable, "저장소를 일시적으로 사용할 수 없습니다."}},
}

var internalMapping = Mapping{http.StatusInternalServerError, KindInternal, "Internal server error"}

func Classify(err error) Mapping {
	for _, r := range rules {
		if errs.Is(err, r.sentinel) {
			return r.mapping
		}
	}
	return internalMapping
}
