package defaults

import (
	"testing"

	"github.com/google/uuid"
)

func TestDayCatalogShape(t *testing.T) {
	days := dayCatalog()
	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if days[0].DayID != 1 || days[0].DayName != "Monday" {
		t.Errorf("first day: got (%d, %q), want (1, \"Monday\")", days[0].DayID, days[0].DayName)
	}
	if days[6].DayID != 7 || days[6].DayName != "Sunday" {
		t.Errorf("last day: got (%d, %q), want (7, \"Sunday\")", days[6].DayID, days[6].DayName)
	}
}

func TestDefaultRoomBelongsToSchool(t *testing.T) {
	school := uuid.New()
	room := defaultRoom(school)
	if room.RoomSchoolID != school {
		t.Errorf("school id: got %s, want %s", room.RoomSchoolID, school)
	}
	if room.RoomName != "Room 1" {
		t.Errorf("room name: got %q, want \"Room 1\"", room.RoomName)
	}
}
