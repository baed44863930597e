package models

// Kode status kehadiran per JP (Jam Pelajaran).
const (
	StatusHadir = "H"
	StatusSakit = "S"
	StatusIzin  = "I"
	StatusAlpa  = "A"
)

var statusLabels = map[string]string{
	StatusHadir: "Hadir",
	StatusSakit: "Sakit",
	StatusIzin:  "Izin",
	StatusAlpa:  "Alpa",
}

func IsValidStatus(code string) bool {
	_, ok := statusLabels[code]
	return ok
}

// StatusLabel mengembalikan "-" untuk JP yang belum tercatat.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return "-"
}
