package block

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/reservation/model/dto"
	"rental/internal/domains/reservation/service"
	"rental/shared/constant"
	"rental/shared/validator"
	"rental/transport/http/middleware"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Block
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Block, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Route("/blocks", func(blocks chi.Router) {
			blocks.Post("/", handler.CreateBlock)
			blocks.Get("/{id}", handler.GetBlockByID)
			blocks.Put("/{id}", handler.UpdateBlock)
			blocks.Delete("/{id}", handler.DeleteBlock)
		})

		routerGroup.Get("/properties/{propertyID}/blocks", handler.GetBlocksByProperty)
	})
}

// CreateBlock handles an owner closing dates on their property.
// @Summary Create a block
// @Description Block a date range. Fails when an active booking overlaps it.
// @Tags Block
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockRequest true "Create Block Request"
// @Success 201 {object} dto.BlockResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/blocks [post]
// @Security BearerAuth
func (handler *Handler) CreateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	req := dto.CreateBlockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create block")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Block created successfully by user " + res.OwnerID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBlockByID retrieves a block.
// @Summary Get a block by ID
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} dto.BlockResponse
// @Failure 404 {object} response.Error
// @Router /v1/blocks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBlockByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get block by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBlocksByProperty lists the active blocks of a property ordered by start date.
// @Summary List the blocks of a property
// @Tags Block
// @Produce json
// @Param propertyID path string true "Property ID"
// @Success 200 {object} dto.GetBlocksResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/properties/{propertyID}/blocks [get]
// @Security BearerAuth
func (handler *Handler) GetBlocksByProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlocksByProperty")
	defer scope.End()

	propertyID := chi.URLParam(request, constant.RequestParamPropertyID)

	res, err := handler.service.GetByProperty(ctx, propertyID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to get blocks")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBlock moves a block to new dates.
// @Summary Update a block
// @Tags Block
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Param request body dto.UpdateBlockRequest true "Update Block Request"
// @Success 200 {object} dto.BlockResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/blocks/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlock")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBlockRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update block")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Block updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBlock removes a block.
// @Summary Delete a block
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Message "Block deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/blocks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlock")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete block")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Block deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Block deleted successfully")
}
