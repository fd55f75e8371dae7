package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	"github.com/smallbiznis/ratebook/internal/markup/service"
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc        markupdomain.Service
	db         *gorm.DB
	cache      *ratecache.Cache
	node       *snowflake.Node
	supplierID snowflake.ID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&markupdomain.Rule{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	supplier := &supplierdomain.Supplier{
		ID:         node.Generate(),
		Name:       "Anand Traders",
		VendorType: supplierdomain.VendorTypeChicken,
	}
	require.NoError(t, db.Create(supplier).Error)

	cache := ratecache.New()
	svc := service.NewService(service.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Cache: cache,
	})

	return &fixture{svc: svc, db: db, cache: cache, node: node, supplierID: supplier.ID}
}

func opPtr(o markupdomain.Operator) *markupdomain.Operator { return &o }
func valPtr(v float64) *float64                            { return &v }

func TestUpsertCreatesRule(t *testing.T) {
	f := setup(t)

	rule, err := f.svc.Upsert(context.Background(), markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
		Operator1:  opPtr(markupdomain.OperatorAdd),
		Value1:     valPtr(20),
	})
	require.NoError(t, err)
	assert.NotZero(t, rule.ID)
	assert.Equal(t, "Tandoori", rule.ItemName)
}

func TestUpsertUpdatesExistingRuleInPlace(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	rule, err := f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
		Operator1:  opPtr(markupdomain.OperatorAdd),
		Value1:     valPtr(20),
	})
	require.NoError(t, err)

	updated, err := f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		ID:         rule.ID.String(),
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
		Operator1:  opPtr(markupdomain.OperatorAdd),
		Value1:     valPtr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, rule.ID, updated.ID)
	assert.Equal(t, 25.0, *updated.Value1)

	var count int64
	require.NoError(t, f.db.Model(&markupdomain.Rule{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertRejectsClaimedItem(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
	})
	require.NoError(t, err)

	// A new rule cannot claim an item another rule already owns.
	_, err = f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateBoiler,
	})
	assert.ErrorIs(t, err, markupdomain.ErrRuleExists)
}

func TestUpsertValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "  ",
		BaseRate:   markupdomain.BaseRateTandoor,
	})
	assert.ErrorIs(t, err, markupdomain.ErrInvalidItemName)

	_, err = f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRate("GoatRate"),
	})
	assert.ErrorIs(t, err, markupdomain.ErrInvalidBaseRate)

	_, err = f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
		Operator1:  opPtr(markupdomain.Operator("%")),
		Value1:     valPtr(3),
	})
	assert.ErrorIs(t, err, markupdomain.ErrInvalidOperator)

	_, err = f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.node.Generate().String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
	})
	assert.ErrorIs(t, err, markupdomain.ErrInvalidSupplier)
}

func TestSaveInvalidatesRateCache(t *testing.T) {
	f := setup(t)

	f.cache.GetOrCompute("2026-08-01", f.supplierID, "Tandoori", func() float64 { return 120 })
	require.Equal(t, 1, f.cache.Len())

	_, err := f.svc.Upsert(context.Background(), markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
		Operator1:  opPtr(markupdomain.OperatorAdd),
		Value1:     valPtr(30),
	})
	require.NoError(t, err)
	assert.Zero(t, f.cache.Len())
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	rule, err := f.svc.Upsert(ctx, markupdomain.UpsertRuleRequest{
		SupplierID: f.supplierID.String(),
		ItemName:   "Tandoori",
		BaseRate:   markupdomain.BaseRateTandoor,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, rule.ID.String()))

	rules, err := f.svc.List(ctx, markupdomain.ListRulesRequest{SupplierID: f.supplierID.String()})
	require.NoError(t, err)
	assert.Empty(t, rules)

	err = f.svc.Delete(ctx, rule.ID.String())
	assert.ErrorIs(t, err, markupdomain.ErrRuleNotFound)
}
