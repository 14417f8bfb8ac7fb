package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Registration represents one student's application to one competition.
// The competition is referenced by value, not by foreign key: deleting a
// user never touches registrations, and registrations only disappear with
// their competition.
type Registration struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CompetitionID uint      `gorm:"index:idx_registration_identity,unique" json:"competitionId"`
	StudentName   string    `json:"studentName"`
	StudentID     string    `gorm:"index:idx_registration_identity,unique" json:"studentId"`
	ClassName     string    `json:"className"`
	Phone         string    `json:"phone"`
	CreateTime    time.Time `json:"createTime"`
	Status        int       `gorm:"not null;default:0" json:"status"`
}

// Registration audit states. Anything other than unaudited is set by an
// administrator through the audit endpoint.
const (
	StatusUnaudited = 0
	StatusApproved  = 1
	StatusRejected  = 2
)

func (c *Client) CreateRegistration(ctx context.Context, registration *Registration) error {
	if registration.CreateTime.IsZero() {
		registration.CreateTime = time.Now()
	}
	if err := c.db.WithContext(ctx).Create(registration).Error; err != nil {
		log.Error("failed to create registration", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetRegistrationsByCompetition(ctx context.Context, competitionID uint) ([]Registration, error) {
	var registrations []Registration
	if err := c.db.WithContext(ctx).Where("competition_id = ?", competitionID).Find(&registrations).Error; err != nil {
		log.Error("failed to get registrations", "competitionID", competitionID, "error", err)
		return nil, err
	}
	return registrations, nil
}

func (c *Client) GetRegistrationByID(ctx context.Context, id uint) (*Registration, error) {
	var registration Registration
	if err := c.db.WithContext(ctx).First(&registration, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("failed to get registration by ID", "error", err)
		return nil, err
	}
	return &registration, nil
}

// RegistrationExists reports whether the student already registered for the
// competition. The unique index on (competition_id, student_id) backs this
// check under concurrent submissions.
func (c *Client) RegistrationExists(ctx context.Context, competitionID uint, studentID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&Registration{}).
		Where("competition_id = ? AND student_id = ?", competitionID, studentID).
		Count(&count).Error
	if err != nil {
		log.Error("failed to check registration existence", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (c *Client) UpdateRegistration(ctx context.Context, registration *Registration) error {
	if err := c.db.WithContext(ctx).Save(registration).Error; err != nil {
		log.Error("failed to update registration", "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteRegistration(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&Registration{}, id).Error; err != nil {
		log.Error("failed to delete registration", "error", err)
		return err
	}
	return nil
}
