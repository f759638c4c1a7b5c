package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the booking counterparty. The scheduling core reads patients for
// ownership comparisons; registration and profile upkeep live at the edge.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name  string `gorm:"column:name;type:varchar(100);not null;index"`
	Email string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Phone string `gorm:"column:phone;type:varchar(20)"`

	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
}

func (Patient) TableName() string {
	return "clinic.patients"
}

type RegisterPatientCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
