package resources_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkops/events-backend/internal/events"
	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/internal/resources"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/database/dbtest"
)

func TestResources_Postgres(t *testing.T) {
	pool := dbtest.Postgres(t)
	ctx := context.Background()

	var eventID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO events (title, event_type, start_date) VALUES ('Feria verde', 'environmental', '2025-10-04') RETURNING id`,
	).Scan(&eventID))

	repo := resources.NewRepository(pool)
	svc := resources.NewService(repo, events.NewRepository(pool))

	ref := int64(12)
	tables, err := svc.Assign(ctx, eventID, &resources.AssignRequest{
		ResourceType: models.ResourceTypeEquipment, ResourceName: "Mesas", ResourceID: &ref, Notes: "plegables",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tables.Quantity)
	assert.Equal(t, models.ResourceStatusPending, tables.Status)

	// Bypass the service pre-check so the partial unique index decides.
	dup := &models.Resource{EventID: eventID, ResourceType: models.ResourceTypeEquipment, ResourceID: &ref,
		ResourceName: "Mesas", Quantity: 1, Status: models.ResourceStatusPending}
	assert.ErrorIs(t, repo.Create(ctx, dup), resources.ErrAlreadyAssigned)

	sameRefOtherType := &models.Resource{EventID: eventID, ResourceType: models.ResourceTypeSpace, ResourceID: &ref,
		ResourceName: "Explanada", Quantity: 1, Status: models.ResourceStatusPending}
	require.NoError(t, repo.Create(ctx, sameRefOtherType))

	orphan := &models.Resource{EventID: eventID + 1000, ResourceType: models.ResourceTypeService, ResourceName: "Limpieza",
		Quantity: 1, Status: models.ResourceStatusPending}
	assert.True(t, apperr.IsKind(repo.Create(ctx, orphan), apperr.KindNotFound))

	qty := 20
	updated, err := svc.Update(ctx, eventID, tables.ID, &resources.UpdateRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, "Mesas", updated.ResourceName)
	assert.Equal(t, "plegables", updated.Notes)
	assert.Equal(t, models.ResourceStatusPending, updated.Status)
	require.NotNil(t, updated.ResourceID)
	assert.Equal(t, ref, *updated.ResourceID)

	confirmed, err := svc.UpdateStatus(ctx, eventID, tables.ID, &resources.StatusRequest{Status: models.ResourceStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceStatusConfirmed, confirmed.Status)
	assert.Equal(t, 20, confirmed.Quantity)

	list, err := svc.List(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.ResourceTypeEquipment, list[0].ResourceType)
	assert.Equal(t, models.ResourceTypeSpace, list[1].ResourceType)

	sum, err := svc.Summary(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.ByStatus[models.ResourceStatusConfirmed])
	assert.Equal(t, 1, sum.ByStatus[models.ResourceStatusPending])
	assert.Zero(t, sum.ByStatus[models.ResourceStatusRejected])

	_, err = svc.Update(ctx, eventID+1, tables.ID, &resources.UpdateRequest{Quantity: &qty})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.Remove(ctx, eventID, tables.ID))
	assert.True(t, apperr.IsKind(svc.Remove(ctx, eventID, tables.ID), apperr.KindNotFound))
}
