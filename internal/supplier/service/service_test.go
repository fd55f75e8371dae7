package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"github.com/smallbiznis/ratebook/internal/supplier/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&markupdomain.Rule{},
		&billdomain.Entry{},
		&ledgerdomain.Transaction{},
	))
	return db
}

func setupService(t *testing.T) (supplierdomain.Service, *gorm.DB) {
	t.Helper()

	db := setupDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := service.NewService(service.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, db
}

func TestCreateSeedsDefaultChickenRules(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{
		Name: "Anand Traders",
	})
	require.NoError(t, err)
	assert.Equal(t, supplierdomain.VendorTypeChicken, supplier.VendorType)
	assert.True(t, supplier.MarkupRequired)

	var rules int64
	require.NoError(t, db.Model(&markupdomain.Rule{}).
		Where("supplier_id = ?", supplier.ID).Count(&rules).Error)
	assert.Equal(t, int64(7), rules)
}

func TestCreateSkipsSeedingWhenMarkupNotRequired(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	noMarkup := false
	supplier, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{
		Name:           "Veggie Mart",
		VendorType:     supplierdomain.VendorTypeVegetable,
		MarkupRequired: &noMarkup,
	})
	require.NoError(t, err)

	var rules int64
	require.NoError(t, db.Model(&markupdomain.Rule{}).
		Where("supplier_id = ?", supplier.ID).Count(&rules).Error)
	assert.Zero(t, rules)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{Name: "Anand Traders"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, supplierdomain.CreateSupplierRequest{Name: "Anand Traders"})
	assert.ErrorIs(t, err, supplierdomain.ErrSupplierExists)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), supplierdomain.CreateSupplierRequest{Name: "   "})
	assert.ErrorIs(t, err, supplierdomain.ErrInvalidName)
}

func TestUpdateRejectsNameClash(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{Name: "Anand Traders"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{Name: "Kumar Poultry"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, supplierdomain.UpdateSupplierRequest{
		ID:   second.ID.String(),
		Name: "Anand Traders",
	})
	assert.ErrorIs(t, err, supplierdomain.ErrSupplierExists)
}

func TestDeleteCascades(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, supplierdomain.CreateSupplierRequest{Name: "Anand Traders"})
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	require.NoError(t, db.Create(&billdomain.Entry{
		ID:         node.Generate(),
		SupplierID: supplier.ID,
		Date:       "2026-08-01",
		ItemName:   "Tandoori",
		Qty:        10,
		VendorRate: 120,
	}).Error)
	require.NoError(t, db.Create(&ledgerdomain.Transaction{
		ID:         node.Generate(),
		SupplierID: supplier.ID,
		Date:       "2026-08-01",
		Type:       ledgerdomain.TypeBill,
		Amount:     1200,
	}).Error)

	require.NoError(t, svc.Delete(ctx, supplier.ID.String()))

	for table, model := range map[string]any{
		"markup_rules":  &markupdomain.Rule{},
		"bill_entries":  &billdomain.Entry{},
		"vendor_ledger": &ledgerdomain.Transaction{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("supplier_id = ?", supplier.ID).Count(&count).Error, table)
		assert.Zero(t, count, table)
	}

	_, err = svc.GetByID(ctx, supplier.ID.String())
	assert.ErrorIs(t, err, supplierdomain.ErrSupplierNotFound)
}
