package models

// Person represents one missing-person record using GORM.
// It corresponds to the 'persons' table.
type Person struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"` // serial number
	Name           string `gorm:"not null" json:"name"`
	CallbackNumber string `json:"callback_number"` // contact number for coordination
	Age            *int   `json:"age,omitempty"`
	DOB            string `gorm:"column:dob" json:"dob"` // YYYY-MM-DD, stored as text
	BirthMark      string `json:"birth_mark"`

	// stored generated filenames only; path resolution belongs to the asset server
	Picture       *string `json:"picture,omitempty"`
	LocationPhoto *string `json:"location_photo,omitempty"`

	// gallery thumbnail and EXIF capture time, both best-effort
	PictureThumb   *string `json:"picture_thumb,omitempty"`
	PictureTakenAt *int64  `json:"picture_taken_at,omitempty"`

	MissingFrom     string `json:"missing_from"` // last location where the person went missing
	CurrentLocation string `json:"current_location"`
	Wearing         string `json:"wearing"` // what they were wearing last time
	HomeCity        string `json:"home_city"`
	Address         string `json:"address"`
	AdditionalInfo  string `json:"additional_info"`
	Status          string `json:"status"` // e.g., Missing, Found, Dead, Sighted, Updated
	Comment         string `json:"comment"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}

// HasPicture reports whether a main photo filename is recorded. Value
// receiver so templates can call it on slice elements.
func (p Person) HasPicture() bool {
	return p.Picture != nil && *p.Picture != ""
}

// HasLocationPhoto reports whether a location photo filename is recorded.
func (p Person) HasLocationPhoto() bool {
	return p.LocationPhoto != nil && *p.LocationPhoto != ""
}
