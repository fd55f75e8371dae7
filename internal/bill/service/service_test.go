package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	"github.com/smallbiznis/ratebook/internal/bill/service"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc        billdomain.Service
	db         *gorm.DB
	supplierID snowflake.ID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&markupdomain.Rule{},
		&ratedomain.DailyRate{},
		&billdomain.Entry{},
		&ledgerdomain.Transaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	supplier := &supplierdomain.Supplier{
		ID:         node.Generate(),
		Name:       "Anand Traders",
		VendorType: supplierdomain.VendorTypeChicken,
	}
	require.NoError(t, db.Create(supplier).Error)

	rules := markupdomain.DefaultChickenRules(supplier.ID, node)
	require.NoError(t, db.Create(&rules).Error)

	require.NoError(t, db.Create(&ratedomain.DailyRate{
		Date:        "2026-08-01",
		TandoorRate: 100,
		BoilerRate:  80,
		EggRate:     50,
	}).Error)

	svc := service.NewService(service.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Cache: ratecache.New(),
	})

	return &fixture{svc: svc, db: db, supplierID: supplier.ID}
}

func TestBuildGrid(t *testing.T) {
	f := setup(t)

	grid, err := f.svc.BuildGrid(context.Background(), billdomain.BuildGridRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
	})
	require.NoError(t, err)
	require.Len(t, grid.Lines, 7)
	assert.Empty(t, grid.Warning)

	byItem := make(map[string]billdomain.Line, len(grid.Lines))
	for _, line := range grid.Lines {
		byItem[line.ItemName] = line
	}
	assert.Equal(t, 120.0, byItem["Tandoori"].ExpectedRate)
	assert.Equal(t, 105.0, byItem["Boiler"].ExpectedRate)
	assert.Equal(t, 10.0, byItem["Egg"].ExpectedRate)
}

func TestBuildGridWarnsWithoutRules(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Exec(`DELETE FROM markup_rules`).Error)

	grid, err := f.svc.BuildGrid(context.Background(), billdomain.BuildGridRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
	})
	require.NoError(t, err)
	assert.Empty(t, grid.Lines)
	assert.NotEmpty(t, grid.Warning)
}

func TestSaveBill(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Save(ctx, billdomain.SaveBillRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines: []billdomain.LineInput{
			{ItemName: "Tandoori", QtyReceived: 10, QtyDamaged: 1, VendorRate: 121},
			{ItemName: "Boiler", QtyReceived: 5, VendorRate: 105},
			{ItemName: "Wings", QtyReceived: 2, QtyDamaged: 2, VendorRate: 115},
		},
	})
	require.NoError(t, err)

	// Wings line has zero net quantity and is not persisted.
	assert.Equal(t, 2, resp.SavedLines)
	assert.Equal(t, 9*121.0+5*105.0, resp.TotalBill)
	assert.False(t, resp.Overwrote)

	var entries int64
	require.NoError(t, f.db.Model(&billdomain.Entry{}).Count(&entries).Error)
	assert.Equal(t, int64(2), entries)

	var txns []ledgerdomain.Transaction
	require.NoError(t, f.db.Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, ledgerdomain.TypeBill, txns[0].Type)
	assert.Equal(t, resp.TotalBill, txns[0].Amount)
}

func TestSaveBillRequiresOverwriteConfirmation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first := billdomain.SaveBillRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines: []billdomain.LineInput{
			{ItemName: "Tandoori", QtyReceived: 10, VendorRate: 120},
		},
	}
	_, err := f.svc.Save(ctx, first)
	require.NoError(t, err)

	_, err = f.svc.Save(ctx, first)
	assert.ErrorIs(t, err, billdomain.ErrBillExists)

	first.ConfirmOverwrite = true
	first.Lines = []billdomain.LineInput{
		{ItemName: "Boiler", QtyReceived: 4, VendorRate: 105},
	}
	resp, err := f.svc.Save(ctx, first)
	require.NoError(t, err)
	assert.True(t, resp.Overwrote)

	// Overwrite replaced the rows and left exactly one bill transaction.
	var entries []billdomain.Entry
	require.NoError(t, f.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "Boiler", entries[0].ItemName)

	var bills int64
	require.NoError(t, f.db.Model(&ledgerdomain.Transaction{}).
		Where("transaction_type = ?", ledgerdomain.TypeBill).Count(&bills).Error)
	assert.Equal(t, int64(1), bills)
}

func TestSaveBillRejectsAllZeroNetQuantities(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Save(context.Background(), billdomain.SaveBillRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines: []billdomain.LineInput{
			{ItemName: "Tandoori", QtyReceived: 3, QtyDamaged: 3, VendorRate: 120},
		},
	})
	assert.ErrorIs(t, err, billdomain.ErrNoPositiveLines)
}

func TestReconcileStatuses(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.Reconcile(context.Background(), billdomain.ReconcileRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines: []billdomain.LineInput{
			{ItemName: "Tandoori", QtyReceived: 10, VendorRate: 150},
			{ItemName: "Boiler", QtyReceived: 10, VendorRate: 105},
			{ItemName: "Unlisted Item", QtyReceived: 10, VendorRate: 100},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 3)

	assert.Equal(t, billdomain.StatusHigh, resp.Lines[0].Status)
	assert.Equal(t, billdomain.StatusOkay, resp.Lines[1].Status)
	// No markup rule resolves to an expected rate of zero.
	assert.Equal(t, billdomain.StatusNoRateData, resp.Lines[2].Status)
}

func TestReconcileRejectsNegativeInputs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Reconcile(ctx, billdomain.ReconcileRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines:      []billdomain.LineInput{{ItemName: "Tandoori", QtyReceived: -1, VendorRate: 100}},
	})
	assert.ErrorIs(t, err, billdomain.ErrNegativeQuantity)

	_, err = f.svc.Reconcile(ctx, billdomain.ReconcileRequest{
		SupplierID: f.supplierID.String(),
		Date:       "2026-08-01",
		Lines:      []billdomain.LineInput{{ItemName: "Tandoori", QtyReceived: 1, VendorRate: -100}},
	})
	assert.ErrorIs(t, err, billdomain.ErrNegativeRate)
}
