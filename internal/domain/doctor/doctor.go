package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name      string `gorm:"column:name;type:varchar(100);not null;index"`
	Specialty string `gorm:"column:specialty;type:varchar(100);not null;index"`
	Email     string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Phone     string `gorm:"column:phone;type:varchar(20)"`

	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`

	// AvailableTimes is the doctor's bookable template, windows like
	// "09:00-10:00". Template windows are times of day, not dated slots.
	AvailableTimes []string `gorm:"column:available_times;serializer:json"`
}

func (Doctor) TableName() string {
	return "clinic.doctors"
}

// TemplateSlots returns the doctor's advertised windows as Slots,
// ordered ascending by start time.
func (d *Doctor) TemplateSlots() []Slot {
	slots := ParseSlots(d.AvailableTimes)
	SortSlots(slots)
	return slots
}

// WorksMornings and WorksAfternoons drive the AM/PM doctor filter.
func (d *Doctor) WorksMornings() bool {
	for _, s := range d.TemplateSlots() {
		if s.IsMorning() {
			return true
		}
	}
	return false
}

func (d *Doctor) WorksAfternoons() bool {
	for _, s := range d.TemplateSlots() {
		if _, ok := s.StartMinute(); ok && !s.IsMorning() {
			return true
		}
	}
	return false
}

type CreateDoctorCommand struct {
	Name           string
	Specialty      string
	Email          string
	Phone          string
	Password       string
	AvailableTimes []string
}

type UpdateDoctorCommand struct {
	Name           *string
	Specialty      *string
	Phone          *string
	AvailableTimes *[]string
}

// ListDoctorsQuery filters the doctor directory. Every predicate is optional;
// zero values mean "no filter".
type ListDoctorsQuery struct {
	Name      string // case-insensitive substring
	Specialty string // case-insensitive exact match
	Period    string // "AM" | "PM" judged on template slot starts, noon is PM
}
