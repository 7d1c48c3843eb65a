package auth

import (
	"errors"

	"github.com/google/uuid"
)

type InMemoryStaffRepository struct {
	staff map[string]*Staff
}

func NewInMemoryStaffRepository() *InMemoryStaffRepository {
	return &InMemoryStaffRepository{
		staff: make(map[string]*Staff),
	}
}

func (r *InMemoryStaffRepository) Save(staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	r.staff[staff.Email] = staff
	return nil
}

func (r *InMemoryStaffRepository) ExistsByEmail(email string) (bool, error) {
	_, exists := r.staff[email]
	return exists, nil
}

func (r *InMemoryStaffRepository) FindByEmail(email string) (*Staff, error) {
	staff, ok := r.staff[email]
	if !ok {
		return nil, errors.New("staff not found")
	}
	return staff, nil
}
