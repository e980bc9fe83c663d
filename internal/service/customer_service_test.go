package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderledger/pkg/apperr"
	"orderledger/pkg/pagination"
)

func TestCreateCustomerRejectsDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)

	first, err := svc.CreateCustomer(ctx, &CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = svc.CreateCustomer(ctx, &CreateCustomerRequest{
		Name:  "Another Alice",
		Email: "alice@example.com",
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// only the first row exists
	page, err := svc.ListCustomers(ctx, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestUpdateCustomerRejectsTakenEmail(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)

	_, err := svc.CreateCustomer(ctx, &CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.CreateCustomer(ctx, &CreateCustomerRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.UpdateCustomer(ctx, bob.ID, &UpdateCustomerRequest{Email: &taken})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// keeping your own email is not a conflict
	same := "bob@example.com"
	name := "Robert"
	updated, err := svc.UpdateCustomer(ctx, bob.ID, &UpdateCustomerRequest{Email: &same, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
}

func TestCustomerNotFound(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)

	_, err := svc.GetCustomer(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.DeleteCustomer(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListCustomersPaginatesAndSearches(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	svc := NewCustomerService(db)

	for i := 0; i < 4; i++ {
		_, err := svc.CreateCustomer(ctx, &CreateCustomerRequest{
			Name:  fmt.Sprintf("Customer %d", i),
			Email: fmt.Sprintf("customer%d@example.com", i),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListCustomers(ctx, pagination.Params{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	require.NotEmpty(t, page.NextCursor)

	rest, err := svc.ListCustomers(ctx, pagination.Params{Limit: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.Empty(t, rest.NextCursor)

	found, err := svc.ListCustomers(ctx, pagination.Params{Search: "Customer 2"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "customer2@example.com", found.Items[0].Email)
}
