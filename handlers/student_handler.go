package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hisbanh/rekapabsensi/database"
	"github.com/hisbanh/rekapabsensi/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

// ===== Aturan validasi =====
var (
	stuReNIS  = regexp.MustCompile(`^[0-9]{1,20}$`)
	stuReNISN = regexp.MustCompile(`^[0-9]{10}$`)
	stuReName = regexp.MustCompile(`^[A-Za-z\s.']{1,100}$`)
)

type studentPayload struct {
	StudentID   string `json:"student_id"` // NIS
	NISN        string `json:"nisn"`       // boleh kosong
	Name        string `json:"name"`
	ClassroomID uint   `json:"classroom_id"`
	IsActive    *bool  `json:"is_active"`
}

func (p *studentPayload) normalize() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.NISN = strings.TrimSpace(p.NISN)
	p.Name = strings.Join(strings.Fields(p.Name), " ")
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}

	if !stuReNIS.MatchString(p.StudentID) {
		errs["student_id"] = "NIS harus angka, maksimal 20 digit"
	}
	if p.NISN != "" && !stuReNISN.MatchString(p.NISN) {
		errs["nisn"] = "NISN harus 10 digit atau kosong"
	}
	if p.Name == "" || !stuReName.MatchString(p.Name) {
		errs["name"] = "nama harus huruf"
	}
	if p.ClassroomID == 0 {
		errs["classroom_id"] = "kelas wajib dipilih"
	} else {
		var cls models.Classroom
		if err := database.DB.First(&cls, "id = ?", p.ClassroomID).Error; err != nil {
			errs["classroom_id"] = "kelas tidak ditemukan"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ===== Handlers =====

// GET /students?q=...&classroom_id=...&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	size := 20
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		if v < 1 {
			size = 1
		} else if v > 100 {
			size = 100
		} else {
			size = v
		}
	}

	var items []models.Student
	tx := database.DB.Model(&models.Student{})

	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("student_id ILIKE ? OR name ILIKE ?", like, like)
	}
	if cid := atoiOr(c.QueryParam("classroom_id"), 0); cid > 0 {
		tx = tx.Where("classroom_id = ?", cid)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := tx.Order("name").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	s := models.Student{
		UUID:        uuid.New(),
		StudentID:   p.StudentID,
		NISN:        p.NISN,
		Name:        p.Name,
		ClassroomID: p.ClassroomID,
		IsActive:    p.IsActive == nil || *p.IsActive,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	var existing models.Student
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.StudentID = p.StudentID
	existing.NISN = p.NISN
	existing.Name = p.Name
	existing.ClassroomID = p.ClassroomID
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /students/:id — soft: nonaktifkan, riwayat absensi tetap
func (h *StudentHandler) Delete(c echo.Context) error {
	var existing models.Student
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	existing.IsActive = false
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /students/import
func (h *StudentHandler) Import(c echo.Context) error {
	var arr []studentPayload
	if err := c.Bind(&arr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	var inserted []models.Student
	errFields := []map[string]any{}

	for i, p := range arr {
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			errFields = append(errFields, map[string]any{"index": i, "fields": errs})
			continue
		}
		inserted = append(inserted, models.Student{
			UUID:        uuid.New(),
			StudentID:   p.StudentID,
			NISN:        p.NISN,
			Name:        p.Name,
			ClassroomID: p.ClassroomID,
			IsActive:    p.IsActive == nil || *p.IsActive,
		})
	}
	if len(errFields) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "BULK_VALIDATION_ERROR",
			"issues": errFields,
		})
	}
	// GORM menolak Create dengan slice kosong
	if len(inserted) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"students": "daftar siswa kosong"},
		})
	}
	if err := database.DB.Create(&inserted).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"inserted": len(inserted)})
}
