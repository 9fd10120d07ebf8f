package catalog

import "github.com/lagossmartbus/booking-core/internal/models"

// LocationDirectory maps location IDs to display labels. The booking core
// only needs IDs; labels exist for presentation collaborators.
type LocationDirectory struct {
	labels map[models.LocationID]string
}

// NewLocationDirectory returns the Lagos State location directory.
func NewLocationDirectory() *LocationDirectory {
	return &LocationDirectory{labels: map[models.LocationID]string{
		"ikeja":           "Ikeja",
		"lagos-island":    "Lagos Island",
		"victoria-island": "Victoria Island",
		"ikoyi":           "Ikoyi",
		"surulere":        "Surulere",
		"yaba":            "Yaba",
		"mushin":          "Mushin",
		"alaba":           "Alaba",
		"ajah":            "Ajah",
		"lekki":           "Lekki",
		"epe":             "Epe",
		"badagry":         "Badagry",
		"ikorodu":         "Ikorodu",
		"agege":           "Agege",
		"oshodi":          "Oshodi",
		"festac":          "Festac Town",
		"maryland":        "Maryland",
		"gbagada":         "Gbagada",
	}}
}

// Label returns the display label for a location ID, falling back to the raw
// ID when the location is unknown.
func (d *LocationDirectory) Label(id models.LocationID) string {
	if label, ok := d.labels[id]; ok {
		return label
	}
	return string(id)
}

// Known reports whether the directory carries the location.
func (d *LocationDirectory) Known(id models.LocationID) bool {
	_, ok := d.labels[id]
	return ok
}

// IDs returns every known location ID.
func (d *LocationDirectory) IDs() []models.LocationID {
	ids := make([]models.LocationID, 0, len(d.labels))
	for id := range d.labels {
		ids = append(ids, id)
	}
	return ids
}
