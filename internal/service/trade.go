package service

import (
	"context"

	"github.com/logiport/portal/internal/api/dto"
	"github.com/logiport/portal/internal/domain/trade"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

type TradeService interface {
	// CreateTrade stores the trade, records the activity and sends the
	// confirmation. A notification error is returned together with the
	// stored trade since the write has already committed.
	CreateTrade(ctx context.Context, actor types.Actor, req dto.CreateTradeRequest) (*dto.TradeResponse, error)

	// ListTrades returns the actor's own trades, latest trade date first
	ListTrades(ctx context.Context, actor types.Actor, filter *types.TradeFilter) (*dto.ListTradesResponse, error)
}

type tradeService struct {
	ServiceParams
	activity     ActivityService
	notification NotificationService
}

func NewTradeService(params ServiceParams, activity ActivityService, notification NotificationService) TradeService {
	return &tradeService{
		ServiceParams: params,
		activity:      activity,
		notification:  notification,
	}
}

func (s *tradeService) CreateTrade(ctx context.Context, actor types.Actor, req dto.CreateTradeRequest) (*dto.TradeResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToTrade(actor)

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.TradeRepo.Create(txCtx, t)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created trade",
		"trade_id", t.ID,
		"product", t.Product,
		"user_id", actor.ID,
	)

	s.activity.RecordAfterCommit(ctx, actor, tradeCreatedAction(t.Product))

	resp := &dto.TradeResponse{Trade: t}
	if err := s.notification.NotifyTradeRecorded(ctx, actor, t); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *tradeService) ListTrades(ctx context.Context, actor types.Actor, filter *types.TradeFilter) (*dto.ListTradesResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &types.TradeFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.UserID = actor.ID

	var (
		trades []*trade.Trade
		count  int64
	)
	err := s.DB.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if trades, err = s.TradeRepo.List(ctx, filter); err != nil {
			return err
		}
		count, err = s.TradeRepo.Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(trades, func(t *trade.Trade, _ int) *dto.TradeResponse {
		return &dto.TradeResponse{Trade: t}
	})
	resp := types.NewListResponse(items, int(count), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
