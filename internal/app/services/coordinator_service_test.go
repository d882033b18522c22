package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestCoordinatorLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blank := "  "
	office := " B-204 "
	created, err := f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{
		FullName:       " Grace Hopper ",
		Email:          "Grace@Example.com",
		Picture:        &blank,
		OfficeLocation: &office,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", created.FullName)
	assert.Equal(t, "grace@example.com", created.Email)
	assert.Nil(t, created.Picture)
	require.NotNil(t, created.OfficeLocation)
	assert.Equal(t, "B-204", *created.OfficeLocation)

	_, err = f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{FullName: "Someone", Email: "GRACE@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCoordinatorEmailExists)

	second, err := f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{FullName: "Alan Kay", Email: "alan@example.com"})
	require.NoError(t, err)

	_, err = f.coordinators.UpdateCoordinator(ctx, second.ID, models.CoordinatorInput{FullName: "Alan Kay", Email: "grace@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCoordinatorEmailExists)

	list, err := f.coordinators.ListCoordinators(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, "Alan Kay", list.Items[0].FullName)

	require.NoError(t, f.coordinators.DeleteCoordinator(ctx, second.ID))
	_, err = f.coordinators.GetCoordinatorByID(ctx, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrCoordinatorNotFound)
	assert.ErrorIs(t, f.coordinators.DeleteCoordinator(ctx, second.ID), apperrors.ErrCoordinatorNotFound)
}
