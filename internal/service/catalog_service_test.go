package service

import (
	"context"
	"testing"

	"stock_management/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	tools := f.category(t, "Tools")
	f.category(t, "Garden")

	_, err := f.categories.Create(ctx, CategoryInput{Name: ptr("Tools")})
	assertKind(t, domain.KindConflict, err)

	// unchanged name is not a conflict
	c, err := f.categories.Update(ctx, tools.ID, CategoryInput{Name: ptr("Tools")})
	require.NoError(t, err)
	assert.Equal(t, "Tools", c.Name)

	_, err = f.categories.Update(ctx, tools.ID, CategoryInput{Name: ptr("Garden")})
	assertKind(t, domain.KindConflict, err)

	c, err = f.categories.Update(ctx, tools.ID, CategoryInput{Name: ptr("Hand tools")})
	require.NoError(t, err)
	assert.Equal(t, "Hand tools", c.Name)

	page, err := f.categories.FindAll(ctx, "1", "1")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	require.NoError(t, f.categories.Delete(ctx, tools.ID))
	_, err = f.categories.FindOne(ctx, tools.ID)
	assertKind(t, domain.KindNotFound, err)
}

func TestCategoryDelete_RefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	p := f.product(t, "Hammer", "10", 1)

	err := f.categories.Delete(ctx, p.CategoryID)
	assertKind(t, domain.KindConflict, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.NoError(t, f.categories.Delete(ctx, p.CategoryID))
}

func TestProductCreate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	tools := f.category(t, "Tools")

	p, err := f.products.Create(ctx, ProductInput{
		Name: ptr("Hammer"), Price: dec("10.50"), Description: ptr("x"), Stock: ptr(3), CategoryID: ptr(tools.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Tools", p.Category.Name)
	assert.True(t, p.Price.Equal(*dec("10.5")))

	_, err = f.products.Create(ctx, ProductInput{
		Name: ptr("Hammer"), Price: dec("1"), Description: ptr("x"), Stock: ptr(1), CategoryID: ptr(tools.ID),
	})
	assertKind(t, domain.KindConflict, err)

	_, err = f.products.Create(ctx, ProductInput{
		Name: ptr("Saw"), Price: dec("1"), Description: ptr("x"), Stock: ptr(1), CategoryID: ptr("missing"),
	})
	assertKind(t, domain.KindNotFound, err)
	assert.Equal(t, "Category not found", err.Error())

	_, err = f.products.Create(ctx, ProductInput{
		Name: ptr("Saw"), Price: dec("-1"), Description: ptr("x"), Stock: ptr(1), CategoryID: ptr(tools.ID),
	})
	assertKind(t, domain.KindValidation, err)

	_, err = f.products.Create(ctx, ProductInput{Name: ptr("Saw")})
	assertKind(t, domain.KindValidation, err)
}

func TestProductUpdate_MergesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	p := f.product(t, "Hammer", "10", 4)
	f.product(t, "Saw", "12", 1)
	garden := f.category(t, "Garden")

	got, err := f.products.Update(ctx, p.ID, ProductInput{Price: dec("0"), Stock: ptr(0)})
	require.NoError(t, err)
	assert.True(t, got.Price.IsZero())
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, "Hammer", got.Name)
	assert.Equal(t, "x", got.Description)

	_, err = f.products.Update(ctx, p.ID, ProductInput{Name: ptr("Saw")})
	assertKind(t, domain.KindConflict, err)

	_, err = f.products.Update(ctx, p.ID, ProductInput{CategoryID: ptr("missing")})
	assertKind(t, domain.KindNotFound, err)

	_, err = f.products.Update(ctx, p.ID, ProductInput{Stock: ptr(domain.MaxStock + 1)})
	assertKind(t, domain.KindValidation, err)

	got, err = f.products.Update(ctx, p.ID, ProductInput{Name: ptr("Hammer"), CategoryID: ptr(garden.ID)})
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Garden", got.Category.Name)

	_, err = f.products.Update(ctx, "missing", ProductInput{})
	assertKind(t, domain.KindNotFound, err)
}

func TestProductList_ExpandsCategory(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.product(t, "Hammer", "10", 1)
	f.product(t, "Saw", "12", 1)

	page, err := f.products.FindAll(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, p := range page.Items {
		require.NotNil(t, p.Category)
		assert.Equal(t, p.Name+" category", p.Category.Name)
	}
}
