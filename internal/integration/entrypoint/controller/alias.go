package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psp-treasury/backend/internal/application/usecase/alias"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// AliasController handles PSP alias mapping endpoints.
type AliasController struct {
	createAliasUseCase *alias.CreateAliasUseCase
	listAliasesUseCase *alias.ListAliasesUseCase
	deleteAliasUseCase *alias.DeleteAliasUseCase
}

// NewAliasController creates a new alias controller instance.
func NewAliasController(
	createAliasUseCase *alias.CreateAliasUseCase,
	listAliasesUseCase *alias.ListAliasesUseCase,
	deleteAliasUseCase *alias.DeleteAliasUseCase,
) *AliasController {
	return &AliasController{
		createAliasUseCase: createAliasUseCase,
		listAliasesUseCase: listAliasesUseCase,
		deleteAliasUseCase: deleteAliasUseCase,
	}
}

// Create handles POST /aliases requests.
func (c *AliasController) Create(ctx *gin.Context) {
	var request dto.CreateAliasRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	output, err := c.createAliasUseCase.Execute(ctx.Request.Context(), alias.CreateAliasInput{
		RawIdentifier: request.RawIdentifier,
		CanonicalName: request.CanonicalName,
	})
	if err != nil {
		c.handleAliasError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAliasResponseDTO(output.Alias))
}

// List handles GET /aliases requests.
func (c *AliasController) List(ctx *gin.Context) {
	output, err := c.listAliasesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAliasError(ctx, err)
		return
	}

	aliases := make([]dto.AliasResponseDTO, len(output.Aliases))
	for i, record := range output.Aliases {
		aliases[i] = dto.ToAliasResponseDTO(record)
	}
	ctx.JSON(http.StatusOK, dto.ListAliasesResponseDTO{Aliases: aliases})
}

// Delete handles DELETE /aliases/:raw requests.
func (c *AliasController) Delete(ctx *gin.Context) {
	err := c.deleteAliasUseCase.Execute(ctx.Request.Context(), alias.DeleteAliasInput{
		RawIdentifier: ctx.Param("raw"),
	})
	if err != nil {
		c.handleAliasError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleAliasError maps alias domain errors to HTTP status codes.
func (c *AliasController) handleAliasError(ctx *gin.Context, err error) {
	var overrideErr *domainerror.OverrideError
	if errors.As(err, &overrideErr) {
		status := http.StatusBadRequest
		switch overrideErr.Code {
		case domainerror.ErrCodeAliasNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeAliasAlreadyExists:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{Error: overrideErr.Message, Code: string(overrideErr.Code)})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
