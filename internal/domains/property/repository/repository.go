package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/property/model"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/failure"
	gRepo "rental/shared/repository"
)

type Property interface {
	// FindByID returns a 404 failure when the property does not exist.
	FindByID(ctx context.Context, id string) (model.Property, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.Property, error) {
	property, err := r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName),
		model.FieldID, model.FieldOwnerID, model.FieldName)
	if err != nil {
		return model.Property{}, err //nolint:wrapcheck
	}

	if property.ID == constant.Empty {
		return model.Property{}, failure.NotFound("property not found") // nolint:wrapcheck
	}

	return property, nil
}
