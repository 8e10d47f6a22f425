package brand

import (
	"context"
	"fmt"
	"testing"

	"brandlink/internal/database"
	"brandlink/internal/domain"
	"brandlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_CreatesThenUpdates(t *testing.T) {
	db, err := database.Connect(fmt.Sprintf("file:brand_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	ctx := context.Background()

	u := &domain.User{Email: "fed-brand@x.com", Role: domain.RoleBrand}
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, u))

	svc := NewService(repository.NewBrandRepository(db))

	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Save(ctx, u.ID, ProfileRequest{CompanyName: " Acme ", Industry: "beauty"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Acme", p.CompanyName)

	_, err = svc.Save(ctx, u.ID, ProfileRequest{CompanyName: "Acme Ltd", Website: "https://acme.test"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Acme Ltd", got.CompanyName)
	assert.Equal(t, "https://acme.test", got.Website)
	assert.Empty(t, got.Industry)
}
