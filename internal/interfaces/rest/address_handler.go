package rest

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jlutz777/SimpleAddress/internal/application/services"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/jlutz777/SimpleAddress/pkg/constants"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/fields"
)

// Fixed failure messages of the address endpoints.
const (
	msgCreateFailed = "Create did not work."
	msgUpdateFailed = "Update did not work."
	msgDeleteFailed = "Delete did not work"
	msgImportFailed = "Import did not work."
)

// maxImportSize bounds an uploaded CSV file.
const maxImportSize = 10 << 20

// AddressService is the address behaviour the handler needs.
// *services.AddressService implements it.
type AddressService interface {
	Fields() []fields.Field
	ExportJSON(ctx context.Context, owner string, opts persistence.ListOptions) ([]byte, error)
	ExportCSV(ctx context.Context, owner, subset string) ([]byte, error)
	Create(ctx context.Context, owner string, body []byte) (string, error)
	Save(ctx context.Context, owner string, body []byte) (bool, error)
	Delete(ctx context.Context, owner, id string) (bool, error)
	ImportCSV(ctx context.Context, owner string, r io.Reader) (*services.ImportResult, error)
}

type AddressHandler struct {
	svc AddressService
}

func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

// List handles GET /addresses
// Query: sort, then_sort, dir=desc
func (h *AddressHandler) List(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	opts := persistence.ListOptions{
		SortField:          c.Query("sort"),
		SecondarySortField: c.Query("then_sort"),
		Descending:         c.Query("dir") == "desc",
	}
	out, err := h.svc.ExportJSON(c.Request.Context(), owner, opts)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.Data(http.StatusOK, constants.ContentTypeJSON, out)
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeFailed(c, msgCreateFailed, err)
		return
	}
	id, err := h.svc.Create(c.Request.Context(), owner, body)
	if err != nil {
		writeFailed(c, msgCreateFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldID: id})
}

// Update handles PUT /addresses with one object or an array of objects
func (h *AddressHandler) Update(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeFailed(c, msgUpdateFailed, err)
		return
	}
	saved, err := h.svc.Save(c.Request.Context(), owner, body)
	if err != nil || !saved {
		writeFailed(c, msgUpdateFailed, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), owner, c.Param("id"))
	if err != nil || !deleted {
		writeFailed(c, msgDeleteFailed, err)
		return
	}
	c.Status(http.StatusOK)
}

// Fields handles GET /fields
func (h *AddressHandler) Fields(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Fields())
}

// ExportCSV handles GET /csv
func (h *AddressHandler) ExportCSV(c *gin.Context) {
	h.exportCSV(c, "", "addresses.csv")
}

// ChristmasCard handles GET /christmas_card
func (h *AddressHandler) ChristmasCard(c *gin.Context) {
	h.exportCSV(c, constants.SubsetChristmas, "christmas_card.csv")
}

func (h *AddressHandler) exportCSV(c *gin.Context, subset, filename string) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	out, err := h.svc.ExportCSV(c.Request.Context(), owner, subset)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.Header(constants.HeaderContentDisposition, "attachment;filename="+filename)
	c.Data(http.StatusOK, constants.ContentTypeCSV, out)
}

// ImportCSV handles POST /import_csv. The CSV arrives either as the "file"
// part of a multipart form or as the raw request body.
func (h *AddressHandler) ImportCSV(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	var src io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		fh, err := c.FormFile("file")
		if err != nil {
			writeFailed(c, msgImportFailed, errors.NewValidationError("file", err.Error()))
			return
		}
		if fh.Size > maxImportSize {
			writeFailed(c, msgImportFailed, errors.NewValidationError("file", "file too large"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeFailed(c, msgImportFailed, err)
			return
		}
		defer f.Close()
		src = f
	}

	result, err := h.svc.ImportCSV(c.Request.Context(), owner, src)
	if err != nil {
		writeFailed(c, msgImportFailed, err)
		return
	}
	if !result.OK() {
		writeFailed(c, msgImportFailed, nil)
		return
	}
	c.JSON(http.StatusOK, result)
}
