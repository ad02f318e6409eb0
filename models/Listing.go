package models

import (
	"encoding/json"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KnownAmenities is the closed set of amenity tags a listing may carry.
// Tags outside this set are dropped on write.
var KnownAmenities = []string{
	"wifi",
	"parking",
	"meals",
	"laundry",
	"private_bathroom",
	"kitchen",
	"workspace",
}

type Listing struct {
	gorm.Model
	HostID        uint           `json:"hostID" gorm:"index"`
	Title         string         `json:"title" gorm:"size:256"`
	Description   string         `json:"description" gorm:"type:text"`
	Location      string         `json:"location" gorm:"size:256;index"`
	Price         float64        `json:"price"`
	MaxGuests     int            `json:"maxGuests"`
	Amenities     datatypes.JSON `json:"amenities"` // object of known tag -> bool
	Photos        datatypes.JSON `json:"photos"`    // array of URLs
	AvailableFrom time.Time      `json:"availableFrom"`
	AvailableTo   time.Time      `json:"availableTo"`

	Host User `json:"host" gorm:"foreignKey:HostID;references:ID"`
}

// AmenitiesJSON filters the given tags down to KnownAmenities and encodes
// them for the JSON column. A nil map encodes as an empty object.
func AmenitiesJSON(tags map[string]bool) datatypes.JSON {
	known := map[string]bool{}
	for tag, v := range tags {
		if slices.Contains(KnownAmenities, tag) {
			known[tag] = v
		}
	}
	encoded, _ := json.Marshal(known)
	return datatypes.JSON(encoded)
}

// PhotosJSON encodes photo URLs for the JSON column, never as null.
func PhotosJSON(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	encoded, _ := json.Marshal(urls)
	return datatypes.JSON(encoded)
}
