package services

import (
	"testing"

	"github.com/hisbanh/rekapabsensi/models"
)

func holidayFixture() (*HolidayService, *fakeHolidayStore, *fakeClassroomStore) {
	holidays := newFakeHolidayStore()
	classrooms := newFakeClassroomStore()
	classrooms.classrooms[1] = &models.Classroom{ID: 1, Name: "X-A", IsActive: true}
	classrooms.classrooms[2] = &models.Classroom{ID: 2, Name: "X-B", IsActive: true}
	schedule := NewScheduleService(defaultSchedules())
	return NewHolidayService(holidays, classrooms, schedule), holidays, classrooms
}

func TestGlobalHolidayAppliesToEveryClassroom(t *testing.T) {
	svc, _, _ := holidayFixture()

	applyAll := true
	_, err := svc.Create(&HolidayInput{
		Date: "2025-01-07", Name: "Libur Nasional",
		HolidayType: models.HolidayLainnya, ApplyToAll: &applyAll,
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// libur global menang untuk semua kelas, termasuk yang tidak disebut
	for _, cid := range []uint{0, 1, 2} {
		if !svc.IsHoliday(date("2025-01-07"), cid) {
			t.Fatalf("classroom %d: 2025-01-07 seharusnya libur", cid)
		}
	}
}

func TestScopedHolidayOnlyHitsNamedClassrooms(t *testing.T) {
	svc, _, _ := holidayFixture()

	scoped := false
	_, err := svc.Create(&HolidayInput{
		Date: "2025-01-08", Name: "UAS Kelas X-A",
		HolidayType: models.HolidayUAS, ApplyToAll: &scoped,
		ClassroomIDs: []uint{1},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !svc.IsHoliday(date("2025-01-08"), 1) {
		t.Fatalf("kelas 1 seharusnya libur")
	}
	if svc.IsHoliday(date("2025-01-08"), 2) {
		t.Fatalf("kelas 2 seharusnya tidak libur")
	}
	if svc.IsHoliday(date("2025-01-08"), 0) {
		t.Fatalf("cek global-saja seharusnya tidak kena libur kelas")
	}
}

func TestScopedHolidayNeedsClassrooms(t *testing.T) {
	svc, _, _ := holidayFixture()

	scoped := false
	_, err := svc.Create(&HolidayInput{
		Date: "2025-01-08", Name: "UAS",
		HolidayType: models.HolidayUAS, ApplyToAll: &scoped,
	}, 1)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Field != "classroom_ids" {
		t.Fatalf("field = %q, want classroom_ids", ve.Field)
	}
}

func TestSchoolDatesSkipHolidaysAndSundays(t *testing.T) {
	svc, _, _ := holidayFixture()

	applyAll := true
	if _, err := svc.Create(&HolidayInput{
		Date: "2025-01-07", Name: "Libur",
		HolidayType: models.HolidayLainnya, ApplyToAll: &applyAll,
	}, 1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Senin 6 s.d. Minggu 12: Minggu bukan hari sekolah, Selasa 7 libur global
	dates := svc.SchoolDatesInRange(date("2025-01-06"), date("2025-01-12"), 1)
	if len(dates) != 5 {
		t.Fatalf("jumlah hari sekolah = %d, want 5", len(dates))
	}
	for _, d := range dates {
		s := d.Format("2006-01-02")
		if s == "2025-01-07" || s == "2025-01-12" {
			t.Fatalf("%s seharusnya tidak masuk hari sekolah", s)
		}
	}
}

func TestUpdateHolidayReturnsNewScope(t *testing.T) {
	svc, _, _ := holidayFixture()

	scoped := false
	h, err := svc.Create(&HolidayInput{
		Date: "2025-01-08", Name: "UAS",
		HolidayType: models.HolidayUAS, ApplyToAll: &scoped,
		ClassroomIDs: []uint{1},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// scope dipindah ke kelas 2: holiday yang dikembalikan tidak boleh
	// masih membawa scope lama
	updated, err := svc.Update(h.ID, &HolidayInput{
		Date: "2025-01-08", Name: "UAS",
		HolidayType: models.HolidayUAS, ApplyToAll: &scoped,
		ClassroomIDs: []uint{2},
	}, 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Classrooms) != 1 || updated.Classrooms[0].ID != 2 {
		t.Fatalf("Classrooms = %+v, want hanya kelas 2", updated.Classrooms)
	}

	applyAll := true
	updated, err = svc.Update(h.ID, &HolidayInput{
		Date: "2025-01-08", Name: "UAS",
		HolidayType: models.HolidayUAS, ApplyToAll: &applyAll,
	}, 1)
	if err != nil {
		t.Fatalf("Update global: %v", err)
	}
	if len(updated.Classrooms) != 0 {
		t.Fatalf("libur global seharusnya tanpa scope kelas, dapat %+v", updated.Classrooms)
	}
}

func TestHolidayCRUD(t *testing.T) {
	svc, _, _ := holidayFixture()

	applyAll := true
	h, err := svc.Create(&HolidayInput{
		Date: "2025-03-01", Name: "Pesantren Kilat",
		HolidayType: models.HolidayPesantren, ApplyToAll: &applyAll,
	}, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if h.CreatedBy != 7 {
		t.Fatalf("CreatedBy = %d, want 7", h.CreatedBy)
	}

	updated, err := svc.Update(h.ID, &HolidayInput{
		Date: "2025-03-02", Name: "Pesantren Kilat",
		HolidayType: models.HolidayPesantren, ApplyToAll: &applyAll,
	}, 7)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Date != "2025-03-02" {
		t.Fatalf("Date = %s, want 2025-03-02", updated.Date)
	}

	if err := svc.Delete(h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(h.ID); err == nil {
		t.Fatalf("Delete kedua kali seharusnya NOT_FOUND")
	}
}
