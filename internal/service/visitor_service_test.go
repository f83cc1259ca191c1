package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type fakeVisitorRepo struct {
	visitors  []models.Visitor
	created   *models.Visitor
	checkedID string
}

func (f *fakeVisitorRepo) List(context.Context, models.VisitorFilter) ([]models.Visitor, int, error) {
	return f.visitors, len(f.visitors), nil
}

func (f *fakeVisitorRepo) Create(_ context.Context, visitor *models.Visitor) (*models.Visitor, error) {
	visitor.ID = "visitor-1"
	f.created = visitor
	return visitor, nil
}

func (f *fakeVisitorRepo) CheckOut(_ context.Context, id string) error {
	f.checkedID = id
	return nil
}

func (f *fakeVisitorRepo) GetByID(_ context.Context, id string) (*models.Visitor, error) {
	return &models.Visitor{ID: id, Status: models.VisitorStatusCheckedOut}, nil
}

func TestVisitorServiceCheckIn(t *testing.T) {
	repo := &fakeVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil)

	visitor, err := svc.CheckIn(context.Background(), CheckInVisitorRequest{
		FullName: "Guest One",
		Phone:    "9876543210",
		Purpose:  "Parent meeting",
		HostName: "Teacher One",
	})
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", visitor.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Guest One", repo.created.FullName)
}

func TestVisitorServiceCheckInValidates(t *testing.T) {
	svc := NewVisitorService(&fakeVisitorRepo{}, nil, nil)

	_, err := svc.CheckIn(context.Background(), CheckInVisitorRequest{FullName: "Guest One"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestVisitorServiceCheckOut(t *testing.T) {
	repo := &fakeVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil)

	visitor, err := svc.CheckOut(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", repo.checkedID)
	assert.Equal(t, models.VisitorStatusCheckedOut, visitor.Status)
}
