package service

//go:generate go run go.uber.org/mock/mockgen -source=./block.go -destination=../mocks/block_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	propertyModel "rental/internal/domains/property/model"
	propertyRepo "rental/internal/domains/property/repository"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/event"
	"rental/internal/domains/reservation/model"
	"rental/internal/domains/reservation/model/dto"
	"rental/internal/domains/reservation/repository"
	"rental/shared"
	"rental/shared/actor"
	"rental/shared/cache"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/timezone"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgBlockUnavailable = "cannot block property for the selected dates"
	msgNotPropertyOwner = "only the property owner can manage its blocks"
)

type Block interface {
	Create(ctx context.Context, req dto.CreateBlockRequest) (dto.BlockResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBlockRequest) (dto.BlockResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BlockResponse, error)
	GetByProperty(ctx context.Context, propertyID string) (dto.GetBlocksResponse, error)
}

type blockService struct {
	core
}

func NewBlock(
	store repository.Reservation,
	properties propertyRepo.Property,
	actors actor.Resolver,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Block {
	return &blockService{
		core: newCore(store, properties, actors, publisher, cfg, cache, otel),
	}
}

func (s *blockService) Create(ctx context.Context, req dto.CreateBlockRequest) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	interval, err := s.interval(&req)
	if err != nil {
		return res, err
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	property, err := s.ownedProperty(ctx, req.PropertyID, current.UserID)
	if err != nil {
		return res, err
	}

	block := model.NewBlock(property.ID, interval, current.UserID, timezone.Now())

	created, err := s.store.CreateIfNoConflict(ctx, block, s.policy.BlockRule())
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			log.Error().Err(err).Str("property_id", property.ID).Msg("failed to create block")
		}

		return res, storeError(err, msgBlockUnavailable, msgPropertyNotFound)
	}

	s.committed(ctx, event.New(event.BlockCreated, created, current.UserID, timezone.Now()), created)

	res.FromModel(created, property.OwnerID)

	return res, nil
}

// Update moves a block. Whether the new dates are checked against the calendar
// is decided by the block move policy.
func (s *blockService) Update(ctx context.Context, id string, req dto.UpdateBlockRequest) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	interval, err := s.interval(&req)
	if err != nil {
		return res, err
	}

	current, block, property, err := s.ownedBlock(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	updated, err := s.store.UpdateWithVersion(ctx, id, expectedVersion(block, req.Version),
		func(entry *model.Entry) (conflict.Rule, error) {
			entry.SetInterval(interval)
			entry.Touch(current.UserID, now)

			return s.policy.BlockMoveRule(), nil
		})
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) && !errors.Is(err, repository.ErrStaleVersion) {
			log.Error().Err(err).Str("entry_id", id).Msg("failed to update block")
		}

		return res, storeError(err, msgBlockUnavailable, msgBlockNotFound)
	}

	s.committed(ctx, event.New(event.BlockUpdated, updated, current.UserID, timezone.Now()), updated)

	res.FromModel(updated, property.OwnerID)

	return res, nil
}

func (s *blockService) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, block, _, err := s.ownedBlock(ctx, id)
	if err != nil {
		return err
	}

	if err = s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error().Err(err).Str("entry_id", id).Msg("failed to delete block")
		}

		return storeError(err, msgBlockUnavailable, msgBlockNotFound)
	}

	s.committed(ctx, event.New(event.BlockDeleted, block, current.UserID, timezone.Now()), block)

	return nil
}

func (s *blockService) Get(ctx context.Context, id string) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validID(id, "block id"); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetBlock, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for block")

		return res, nil
	}

	block, err := s.entry(ctx, id, model.KindBlock)
	if err != nil {
		return res, err
	}

	property, err := s.property(ctx, block.PropertyID)
	if err != nil {
		return res, err
	}

	res.FromModel(block, property.OwnerID)

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *blockService) GetByProperty(ctx context.Context, propertyID string) (res dto.GetBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBlocksByProperty")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validID(propertyID, "property id"); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetBlocks, propertyID)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blocks")

		return res, nil
	}

	property, err := s.property(ctx, propertyID)
	if err != nil {
		return res, err
	}

	blocks, err := s.store.FindActiveBlocksByProperty(ctx, property.ID)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to get blocks")

		return res, fmt.Errorf("failed to get blocks: %w", err)
	}

	res.FromModels(blocks, property.OwnerID)

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *blockService) ownedProperty(ctx context.Context, propertyID, userID string) (propertyModel.Property, error) {
	property, err := s.property(ctx, propertyID)
	if err != nil {
		return propertyModel.Property{}, err
	}

	if !property.IsOwnedBy(userID) {
		return propertyModel.Property{}, failure.Forbidden(msgNotPropertyOwner) //nolint:wrapcheck
	}

	return property, nil
}

// ownedBlock resolves the actor and loads a block on a property that actor owns.
func (s *blockService) ownedBlock(ctx context.Context, id string) (actor.Actor, model.Entry, propertyModel.Property, error) {
	if err := validID(id, "block id"); err != nil {
		return actor.Actor{}, model.Entry{}, propertyModel.Property{}, err
	}

	current, err := s.actors.Current(ctx)
	if err != nil {
		return actor.Actor{}, model.Entry{}, propertyModel.Property{}, err //nolint:wrapcheck
	}

	block, err := s.entry(ctx, id, model.KindBlock)
	if err != nil {
		return actor.Actor{}, model.Entry{}, propertyModel.Property{}, err
	}

	property, err := s.ownedProperty(ctx, block.PropertyID, current.UserID)
	if err != nil {
		return actor.Actor{}, model.Entry{}, propertyModel.Property{}, err
	}

	return current, block, property, nil
}
