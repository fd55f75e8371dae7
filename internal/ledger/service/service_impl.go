package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billrepository "github.com/smallbiznis/ratebook/internal/bill/repository"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	"github.com/smallbiznis/ratebook/internal/ledger/repository"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  ledgerdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) ledgerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("ledger.service"),

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
	}
}

// RecordPayment stores a vendor payment as a negative ledger amount. The
// input amount must be positive.
func (s *Service) RecordPayment(ctx context.Context, req ledgerdomain.RecordPaymentRequest) (*ledgerdomain.Transaction, error) {
	supplierID, err := s.resolveSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(ratedomain.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, ledgerdomain.ErrInvalidDate
	}
	date := t.Format(ratedomain.DateLayout)

	if req.Amount <= 0 {
		return nil, ledgerdomain.ErrInvalidAmount
	}

	details := strings.TrimSpace(req.Details)
	if details == "" {
		details = fmt.Sprintf("Payment recorded on %s", date)
	}

	tx := &ledgerdomain.Transaction{
		ID:         s.genID.Generate(),
		Date:       date,
		SupplierID: supplierID,
		Type:       ledgerdomain.TypePayment,
		Amount:     -math.Abs(req.Amount),
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("date", date),
		zap.Float64("amount", req.Amount),
	)
	return tx, nil
}

// NetDue sums persisted bill amounts with recorded payment amounts (already
// negative) into the signed balance: positive means the supplier is owed.
func (s *Service) NetDue(ctx context.Context, supplierID string) (*ledgerdomain.NetDueResponse, error) {
	id, err := s.resolveSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return s.netDue(ctx, id)
}

func (s *Service) netDue(ctx context.Context, id snowflake.ID) (*ledgerdomain.NetDueResponse, error) {
	totalBills, err := billrepository.NewRepository(s.db).SumVendorAmount(ctx, id)
	if err != nil {
		return nil, err
	}

	totalPayments, err := s.repo.SumByType(ctx, id, ledgerdomain.TypePayment)
	if err != nil {
		return nil, err
	}

	netDue := round2(totalBills + totalPayments)
	label := ledgerdomain.BalanceSettled
	switch {
	case netDue > 0:
		label = ledgerdomain.BalanceNetDue
	case netDue < 0:
		label = ledgerdomain.BalanceOverpaid
	}

	return &ledgerdomain.NetDueResponse{
		SupplierID:    id.String(),
		TotalBills:    round2(totalBills),
		TotalPayments: round2(totalPayments),
		NetDue:        netDue,
		Label:         label,
	}, nil
}

// Statement merges per-date bill totals with recorded ledger rows, newest
// first. Amounts are unsigned for display; the type carries the direction.
func (s *Service) Statement(ctx context.Context, supplierID string) (*ledgerdomain.StatementResponse, error) {
	id, err := s.resolveSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.BillTotalsByDate(ctx, id)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.List(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if tx.Type == ledgerdomain.TypeBill {
			// Bill debits in the statement come from the bill rows
			// themselves; the ledger bill row is bookkeeping only.
			continue
		}
		rows = append(rows, ledgerdomain.StatementRow{
			Date:    tx.Date,
			Type:    tx.Type,
			Amount:  math.Abs(tx.Amount),
			Details: tx.Details,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	for i := range rows {
		rows[i].Amount = round2(math.Abs(rows[i].Amount))
	}

	netDue, err := s.netDue(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ledgerdomain.StatementResponse{
		SupplierID: id.String(),
		Rows:       rows,
		NetDue:     *netDue,
	}, nil
}

// TotalOutstanding sums net dues across every supplier.
func (s *Service) TotalOutstanding(ctx context.Context) (float64, error) {
	var ids []snowflake.ID
	err := s.db.WithContext(ctx).Raw(`SELECT id FROM suppliers`).Scan(&ids).Error
	if err != nil {
		return 0, err
	}

	var total float64
	for _, id := range ids {
		due, err := s.netDue(ctx, id)
		if err != nil {
			return 0, err
		}
		total += due.NetDue
	}
	return round2(total), nil
}

func (s *Service) resolveSupplier(ctx context.Context, supplierID string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(supplierID))
	if err != nil {
		return 0, ledgerdomain.ErrInvalidSupplier
	}

	var count int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM suppliers WHERE id = ?`, id,
	).Scan(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ledgerdomain.ErrInvalidSupplier
	}
	return id, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
