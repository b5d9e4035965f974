//go:build unit

package response

import (
	"testing"

	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"
	"dorm-services/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFromAvailabilityView(t *testing.T) {
	view := &queries.AvailabilityView{
		Space: queries.SpaceView{ID: "ROOM_A", Name: "스터디룸 A", Capacity: 2},
		Date:  "2025-03-20",
		Slots: []queries.SlotAvailabilityView{
			{TimeSlot: "09:00-10:00", Capacity: 2, Confirmed: 1, Available: 1},
			{TimeSlot: "10:00-11:00", Capacity: 2, Confirmed: 2, Available: 0},
		},
	}

	want := &AvailabilityResponse{
		Space: SpaceResponse{ID: "ROOM_A", Name: "스터디룸 A", Capacity: 2},
		Date:  "2025-03-20",
		Slots: []SlotResponse{
			{TimeSlot: "09:00-10:00", Capacity: 2, Confirmed: 1, Available: 1},
			{TimeSlot: "10:00-11:00", Capacity: 2, Confirmed: 2, Available: 0},
		},
	}
	if diff := cmp.Diff(want, FromAvailabilityView(view)); diff != "" {
		t.Errorf("availability mismatch (-want +got):\n%s", diff)
	}
}

func TestFromReservationView(t *testing.T) {
	phone := "010-1234-5678"
	view := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Phone = &phone
	}).BuildView()

	got := FromReservationView(&view)

	assert.Equal(t, view.ID, got.ID)
	assert.Equal(t, view.SpaceName, got.SpaceName)
	assert.Equal(t, view.StudentID, got.StudentID)
	assert.Equal(t, view.Status, got.Status)
	if assert.NotNil(t, got.Phone) {
		assert.Equal(t, phone, *got.Phone)
	}
	assert.Nil(t, got.Email)
}

func TestFromCancelResult(t *testing.T) {
	canceled := builder.NewReservationBuilder().BuildView()

	resp := FromCancelResult(&commands.CancelReservationResult{Canceled: canceled})
	assert.Equal(t, canceled.ID, resp.Canceled.ID)
	assert.Nil(t, resp.Promoted)

	promoted := builder.NewReservationBuilder().WithRequester("C", "학생 C").BuildView()
	resp = FromCancelResult(&commands.CancelReservationResult{Canceled: canceled, Promoted: &promoted})
	if assert.NotNil(t, resp.Promoted) {
		assert.Equal(t, promoted.ID, resp.Promoted.ID)
	}
}

func TestFromComplaintViews(t *testing.T) {
	views := []queries.ComplaintView{
		builder.NewComplaintBuilder().BuildView(),
		builder.NewComplaintBuilder().BuildView(),
	}

	got := FromComplaintViews(views)

	assert.Len(t, got, 2)
	assert.Equal(t, views[1].ID, got[1].ID)
	assert.Equal(t, "normal", got[0].Urgency)
}
