package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hisbanh/rekapabsensi/database"
	"github.com/hisbanh/rekapabsensi/models"
)

type ClassroomHandler struct{}

func NewClassroomHandler() *ClassroomHandler { return &ClassroomHandler{} }

var (
	clsReSection = regexp.MustCompile(`^[A-Za-z]{1,3}$`)
	clsReYear    = regexp.MustCompile(`^[0-9]{4}/[0-9]{4}$`) // mis. 2025/2026
)

type classroomPayload struct {
	Grade        int    `json:"grade"`
	Section      string `json:"section"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	AcademicYear string `json:"academic_year"`
	IsActive     *bool  `json:"is_active"`
}

func (p *classroomPayload) normalize() {
	p.Section = strings.ToUpper(strings.TrimSpace(p.Section))
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
}

func validateClassroom(p *classroomPayload) map[string]string {
	errs := map[string]string{}

	if p.Grade < 1 || p.Grade > 12 {
		errs["grade"] = "tingkat harus 1-12"
	}
	if !clsReSection.MatchString(p.Section) {
		errs["section"] = "rombel harus huruf, maksimal 3 karakter"
	}
	if p.Name == "" {
		errs["name"] = "nama kelas wajib diisi"
	}
	if p.Capacity < 0 || p.Capacity > 100 {
		errs["capacity"] = "kapasitas harus 0-100"
	}
	if !clsReYear.MatchString(p.AcademicYear) {
		errs["academic_year"] = "tahun ajaran harus berformat YYYY/YYYY"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /classrooms?active=true
func (h *ClassroomHandler) List(c echo.Context) error {
	var items []models.Classroom
	tx := database.DB.Model(&models.Classroom{})
	if c.QueryParam("active") == "true" {
		tx = tx.Where("is_active = ?", true)
	}
	if err := tx.Order("grade, section").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /classrooms/:id
func (h *ClassroomHandler) Get(c echo.Context) error {
	var cls models.Classroom
	if err := database.DB.First(&cls, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, cls)
}

// GET /classrooms/:id/students
func (h *ClassroomHandler) Students(c echo.Context) error {
	id := mustID(c, "id")
	var cls models.Classroom
	if err := database.DB.First(&cls, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var students []models.Student
	if err := database.DB.
		Where("classroom_id = ? AND is_active = ?", id, true).
		Order("name").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, students)
}

// POST /classrooms
func (h *ClassroomHandler) Create(c echo.Context) error {
	var p classroomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateClassroom(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	cls := models.Classroom{
		Grade:        p.Grade,
		Section:      p.Section,
		Name:         p.Name,
		Capacity:     p.Capacity,
		AcademicYear: p.AcademicYear,
		IsActive:     p.IsActive == nil || *p.IsActive,
	}
	if err := database.DB.Create(&cls).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cls)
}

// PUT /classrooms/:id
func (h *ClassroomHandler) Update(c echo.Context) error {
	var existing models.Classroom
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p classroomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateClassroom(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.Grade = p.Grade
	existing.Section = p.Section
	existing.Name = p.Name
	existing.Capacity = p.Capacity
	existing.AcademicYear = p.AcademicYear
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /classrooms/:id
func (h *ClassroomHandler) Delete(c echo.Context) error {
	id := mustID(c, "id")

	// kelas yang masih punya siswa aktif tidak boleh dihapus
	var n int64
	if err := database.DB.Model(&models.Student{}).
		Where("classroom_id = ? AND is_active = ?", id, true).
		Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "CLASSROOM_HAS_STUDENTS"})
	}

	if err := database.DB.Delete(&models.Classroom{}, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
