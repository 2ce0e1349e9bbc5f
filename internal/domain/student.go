package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Student struct {
	ID                int
	FirstName         string
	LastName          string
	Email             string
	Password          password
	BillingCustomerID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

// HasBillingProfile reports whether the student has been registered with the
// payment gateway. A charge must never be attempted without one.
func (s *Student) HasBillingProfile() bool {
	return s.BillingCustomerID != nil && *s.BillingCustomerID != ""
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetById(ctx context.Context, id int) (*Student, error)
	SetBillingCustomerID(ctx context.Context, studentID int, customerID string) error
}
