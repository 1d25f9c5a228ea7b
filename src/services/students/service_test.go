package students

import (
	"context"
	"testing"

	"attendance-tracker/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateSet(t *testing.T) {
	assert.Empty(t, updateSet(models.StudentUpdate{}))

	name := "Ada"
	sem := 3
	th := 0.8
	subjects := []string{"CS101", "CS102"}
	set := updateSet(models.StudentUpdate{Name: &name, Semester: &sem, MinThreshold: &th, Subjects: &subjects})
	assert.Equal(t, bson.M{
		"name":          "Ada",
		"semester":      3,
		"min_threshold": 0.8,
		"subjects":      []string{"CS101", "CS102"},
	}, set)

	var none []string
	cleared := updateSet(models.StudentUpdate{Subjects: &none})
	assert.Equal(t, []string{}, cleared["subjects"])
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", normalizeEmail("  Ada@Example.COM "))
}

func TestFindByIDInvalidHex(t *testing.T) {
	s := NewService(nil)
	_, err := s.FindByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.Update(context.Background(), "nope", models.StudentUpdate{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
